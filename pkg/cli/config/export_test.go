package config

// NewBeeForTest creates a Bee config for testing purposes
func NewBeeForTest(endpoint, apiKey string, maxPages int) *Bee {
	return &Bee{
		endpoint: endpoint,
		apiKey:   apiKey,
		maxPages: maxPages,
	}
}

// NewOutputForTest creates an Output config for testing purposes
func NewOutputForTest(dir string, monthPartition bool, factsFile string) *Output {
	return &Output{
		dir:            dir,
		monthPartition: monthPartition,
		factsFile:      factsFile,
	}
}

// NewJournalForTest creates a Journal config for testing purposes
func NewJournalForTest(headerPoints, allPresentBonus int) *Journal {
	return &Journal{
		headerPoints:    headerPoints,
		allPresentBonus: allPresentBonus,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
