package portal

import (
	"errors"
	"strings"
)

var (
	// ErrPrecondition marks input that fails validation before any
	// browser work starts.
	ErrPrecondition = errors.New("precondition failed")
	// ErrSession marks failures while establishing or validating the
	// authenticated portal session.
	ErrSession = errors.New("portal session failed")
	// ErrScrape marks failures while extracting the quotes grid.
	ErrScrape = errors.New("quote scrape failed")
)

// Messages shown to dispatchers. Technical detail stays in the logs.
const (
	msgBrowserClosed  = "O navegador foi fechado durante a automação. Execute novamente."
	msgElementTimeout = "A automação excedeu o tempo de espera por um elemento na página. O site pode estar lento ou fora do ar."
	msgGenericFailure = "Ocorreu um erro durante a automação. Verifique os registros para mais detalhes."
)

// UserMessage maps a raw automation failure onto the short message a
// dispatcher sees. Classification is by pattern on the driver's error
// text, matching the portal's known failure modes; anything else gets
// the generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "has been closed"), strings.Contains(s, "browser closed"):
		return msgBrowserClosed
	case strings.Contains(s, "timeout"), strings.Contains(s, "timed out"):
		return msgElementTimeout
	default:
		return msgGenericFailure
	}
}
