package execution

import (
	"fmt"
	"strings"

	"nexus/internal/client"
	"nexus/internal/errors"
)

// Kind classifies how an execution ended.
type Kind int

const (
	Succeeded Kind = iota
	Failed
	TransportError
)

func (k Kind) String() string {
	switch k {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "transport error"
	}
}

// Executing is shown while a request is outstanding.
const Executing = "Executing...\n"

const (
	successBanner = "✓ Execution completed successfully!"
	failureBanner = "✗ Execution failed!"
	outputRule    = "═══════════ OUTPUT ═══════════"
	errorRule     = "═══════════ ERROR ═══════════"
	closingRule   = "═══════════════════════════════"
)

// Outcome is one resolved execution.
type Outcome struct {
	Kind   Kind
	Action client.Action
	Output string
	// Message is the service's error field, or the transport error text.
	Message string
	// Code is the reported exit code, nil when the service omitted it.
	Code *int
	Err  error
}

// Classify turns a reply or transport error into an Outcome.
func Classify(action client.Action, res client.ExecutionResult, err error) Outcome {
	if err != nil {
		return Outcome{Kind: TransportError, Action: action, Message: err.Error(), Err: err}
	}
	o := Outcome{Action: action, Output: res.Output, Message: res.Error, Code: res.ExitCode}
	if res.Success {
		o.Kind = Succeeded
	} else {
		o.Kind = Failed
		o.Err = errors.NewRequestError(firstNonEmpty(res.Error, "execution failed"), "/api/execute", 0, errors.ExecutionFailed, nil)
	}
	return o
}

// ExitCode returns the exit code and whether the service reported it.
// Unreported codes fall back to 0 on success and 1 otherwise.
func (o Outcome) ExitCode() (int, bool) {
	if o.Code != nil {
		return *o.Code, true
	}
	if o.Kind == Succeeded {
		return 0, false
	}
	return 1, false
}

// ExitCodeText formats the exit code, marking assumed values.
func (o Outcome) ExitCodeText() string {
	code, known := o.ExitCode()
	if known {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("unknown (assumed %d)", code)
}

// Render formats the outcome for the output panel.
func (o Outcome) Render() string {
	var b strings.Builder
	switch o.Kind {
	case Succeeded:
		b.WriteString(successBanner + "\n\n")
		b.WriteString(outputRule + "\n\n")
		b.WriteString(firstNonEmpty(o.Output, "(No output)"))
		b.WriteString("\n\n" + closingRule)
		b.WriteString("\nExit Code: " + o.ExitCodeText())
	case Failed:
		b.WriteString(failureBanner + "\n\n")
		b.WriteString(errorRule + "\n\n")
		b.WriteString(firstNonEmpty(o.Output, o.Message, "Unknown error"))
		b.WriteString("\n\n" + closingRule)
		b.WriteString("\nExit Code: " + o.ExitCodeText())
	default:
		b.WriteString(failureBanner + "\n\n")
		b.WriteString("Error: " + o.Message)
	}
	return b.String()
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
