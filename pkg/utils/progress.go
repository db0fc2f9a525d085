package utils

import (
	"io"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// NewProgressBar renders a byte progress bar for one transfer on stdout.
// maxBytes of -1 renders a spinner for transfers of unknown size.
func NewProgressBar(maxBytes int64, description string) *progressbar.ProgressBar {
	return newProgressBar(ansi.NewAnsiStdout(), maxBytes, description)
}

func newProgressBar(w io.Writer, maxBytes int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(maxBytes,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(25),
		progressbar.OptionSetDescription("[cyan][reset] "+description),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
