package repodata

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"
)

// Report writes a human-readable rendering of md to w.
func Report(w io.Writer, md Repomd) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Revision:\t%d\n", md.Revision)
	fmt.Fprintf(tw, "Entries:\t%d\n", len(md.Data))
	for _, d := range md.Data {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "[%s]\n", d.Kind)
		fmt.Fprintf(tw, "  Location:\t%s\n", d.Location)
		fmt.Fprintf(tw, "  Checksum:\t%s\n", d.Checksum)
		if d.OpenChecksum != nil {
			fmt.Fprintf(tw, "  OpenChecksum:\t%s\n", *d.OpenChecksum)
		}
		if d.HeaderChecksum != nil {
			fmt.Fprintf(tw, "  HeaderChecksum:\t%s\n", *d.HeaderChecksum)
		}
		fmt.Fprintf(tw, "  Timestamp:\t%d (%s)\n", d.Timestamp, time.Unix(int64(d.Timestamp), 0).UTC().Format(time.RFC3339))
		fmt.Fprintf(tw, "  Size:\t%d\n", d.Size)
		fmt.Fprintf(tw, "  OpenSize:\t%s\n", optString(d.OpenSize))
		fmt.Fprintf(tw, "  HeaderSize:\t%s\n", optString(d.HeaderSize))
		fmt.Fprintf(tw, "  DatabaseVersion:\t%s\n", optString(d.DatabaseVersion))
	}
	for _, warn := range md.Warnings() {
		fmt.Fprintf(tw, "warning: %s\n", warn)
	}
	return tw.Flush()
}

func optString(n *uint64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatUint(*n, 10)
}
