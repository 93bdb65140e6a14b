package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/arloliu/cfgbin/database"
)

// writeSummary prints the tables and schemas of db.
func writeSummary(w io.Writer, path string, size int, db *database.Database) error {
	var sb strings.Builder

	tables := db.Tables()
	fmt.Fprintf(&sb, "%s: %s, %d tables, %s\n", path, db.Source(), len(tables), humanize.IBytes(uint64(size))) //nolint:gosec

	annotations := db.Annotations()
	keys := make([]string, 0, len(annotations))
	for k := range annotations {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "  # %s = %s\n", k, annotations[k])
	}

	for _, table := range tables {
		fmt.Fprintf(&sb, "  %s (%s rows)\n", table.Name(), humanize.Comma(int64(len(table.Rows()))))

		for i, f := range table.Schema().Fields {
			name := f.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}

			if f.Count == 1 {
				fmt.Fprintf(&sb, "    %-24s %s\n", name, f.Type)
			} else {
				fmt.Fprintf(&sb, "    %-24s %s[%d]\n", name, f.Type, f.Count)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
