// Package markdown renders downloaded meeting records into flat markdown
// documents.
//
// The converter pairs the two fetch categories by document id: a meeting
// with both a transcript record and a meeting record gets one document with
// notes, statistics and the full transcript; a meeting covered by only one
// category still converts, with the missing sections omitted. The rendering
// is deterministic, so re-running the converter over unchanged inputs is a
// no-op unless force is set.
package markdown
