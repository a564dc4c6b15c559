// Package cmd implements the command-line interface for granolaexport.
//
// This package provides the following commands:
//   - transcripts: Download meeting transcripts as JSON files
//   - meetings: Download meeting notes and metadata as JSON files
//   - convert: Render downloaded records into markdown documents
//   - doctor: Check credentials and configuration without touching the network
//   - version: Display version information
//
// The commands form a linear pipeline the user runs manually, in order;
// the shared filesystem directories are the only handoff between them.
package cmd
