package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/redact-flow/internal/backend"
	"github.com/schollz/progressbar/v3"
)

// NewUploadProgress returns a backend.ProgressFunc that draws a byte
// progress bar on w for each request body.
func NewUploadProgress(w io.Writer, description string) backend.ProgressFunc {
	return func(total int64) io.Writer {
		return progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(0),
			progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(w); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		)
	}
}
