package bench

import (
	bytebufcmd "github.com/openziti/bytebuf/cmd/bytebuf/bytebuf"
	"github.com/spf13/cobra"
)

func init() {
	benchCmd.Flags().StringVarP(&profilePath, "profile", "f", "", "Profile file path")
	benchCmd.Flags().BoolVar(&direct, "direct", false, "Use direct (mmap) regions")
	benchCmd.Flags().BoolVar(&unpooled, "unpooled", false, "Bypass the pooled allocator")
	benchCmd.Flags().IntVarP(&count, "count", "c", 100000, "Allocation cycles")
	benchCmd.Flags().IntVarP(&size, "size", "s", 16*1024, "Payload bytes per cycle")
	bytebufcmd.RootCmd.AddCommand(benchCmd)
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Exercise an allocator and report instrument samples",
	Run:   bench,
}
var profilePath string
var direct bool
var unpooled bool
var count int
var size int
