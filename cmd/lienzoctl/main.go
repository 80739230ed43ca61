// Command lienzoctl is a small operator CLI over on-disk document
// snapshots: merge two snapshots, dump a human-readable tree, or mint a
// fresh empty document at a given site.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/obra-studios/lienzo-collab"
	"github.com/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "merge":
		err = runMerge(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	case "new-site":
		err = runNewSite(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "lienzoctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lienzoctl <merge|dump|new-site> [flags]")
}

func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	into := fs.String("into", "", "path to the snapshot that receives the merge (overwritten)")
	from := fs.String("from", "", "path to the snapshot to merge in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *into == "" || *from == "" {
		return errors.New("merge requires -into and -from")
	}

	local, err := loadDocument(*into)
	if err != nil {
		return errors.Wrap(err, "reading -into")
	}
	remote, err := loadDocument(*from)
	if err != nil {
		return errors.Wrap(err, "reading -from")
	}

	local.Merge(remote)

	data, err := local.Serialize()
	if err != nil {
		return errors.Wrap(err, "serializing merged document")
	}
	return os.WriteFile(*into, data, 0o644)
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	path := fs.String("snapshot", "", "path to the snapshot to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("dump requires -snapshot")
	}

	doc, err := loadDocument(*path)
	if err != nil {
		return err
	}
	fmt.Print(doc.DebugTree())
	return nil
}

func runNewSite(args []string) error {
	fs := flag.NewFlagSet("new-site", flag.ExitOnError)
	site := fs.String("site", "", "site id to create the document under")
	out := fs.String("out", "", "path to write the fresh snapshot to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *site == "" || *out == "" {
		return errors.New("new-site requires -site and -out")
	}

	doc := crdt.NewDocument(*site)
	data, err := doc.Serialize()
	if err != nil {
		return errors.Wrap(err, "serializing fresh document")
	}
	return os.WriteFile(*out, data, 0o644)
}

func loadDocument(path string) (*crdt.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return crdt.Deserialize(data)
}
