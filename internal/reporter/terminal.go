package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter outputs human-friendly text to the terminal: a
// hardware banner, a live progress bar keyed off file completion, and
// a final results block.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar

	cyan  *color.Color
	green *color.Color
	red   *color.Color
	bold  *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:  color.New(color.FgCyan, color.Bold),
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed, color.Bold),
		bold:  color.New(color.Bold),
	}
}

func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("HARDWARE")
	r.printLabel(10, "Hostname:", summary.Hostname)
	for _, d := range summary.Devices {
		r.printLabel(10, "Device:", fmt.Sprintf("%s (%s:%d)", d.Name, d.EP, d.ID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions(100,
		progressbar.OptionSetDescription("detecting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) DetectProgress(progress ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress == nil {
		return
	}
	clamped := progress.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}
	_ = r.progress.Set(int(clamped))
	r.progress.Describe(fmt.Sprintf("detecting %d/%d files", progress.FilesComplete, progress.FilesTotal))
}

func (r *TerminalReporter) DetectComplete(summary CompleteSummary) {
	r.mu.Lock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.mu.Unlock()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	r.printLabel(16, "Files processed:", fmt.Sprintf("%d", summary.FilesProcessed))
	r.printLabel(16, "Frames exported:", fmt.Sprintf("%d", summary.FramesExported))
	errLabel := fmt.Sprintf("%d", summary.ErrorCount)
	if summary.ErrorCount > 0 {
		errLabel = r.red.Sprint(errLabel)
	}
	r.printLabel(16, "Errors:", errLabel)
	fmt.Printf("  %s %s\n", r.bold.Sprint("Saved to"), r.green.Sprint(summary.ResultPath))
}

func (r *TerminalReporter) DetectError(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	fmt.Printf("\nFile %s of %d\n", r.bold.Sprint(context.CurrentFile), context.TotalFiles)
}

func (r *TerminalReporter) Verbose(message string) {
	fmt.Println(message)
}
