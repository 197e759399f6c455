package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) Hardware(summary HardwareSummary) {
	for _, r := range c.reporters {
		r.Hardware(summary)
	}
}

func (c *CompositeReporter) DetectProgress(progress ProgressSnapshot) {
	for _, r := range c.reporters {
		r.DetectProgress(progress)
	}
}

func (c *CompositeReporter) DetectComplete(summary CompleteSummary) {
	for _, r := range c.reporters {
		r.DetectComplete(summary)
	}
}

func (c *CompositeReporter) DetectError(err ReporterError) {
	for _, r := range c.reporters {
		r.DetectError(err)
	}
}

func (c *CompositeReporter) FileProgress(context FileProgressContext) {
	for _, r := range c.reporters {
		r.FileProgress(context)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
