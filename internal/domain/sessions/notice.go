package sessions

import (
	"errors"

	"medical-data-entry/internal/domain/connection"
	"medical-data-entry/internal/domain/submission"
	"medical-data-entry/internal/platform/messages"
)

// ConnectNotice traduce el resultado de Connect a la notificación de UI.
func ConnectNotice(p messages.Printer, err error) messages.Notice {
	switch {
	case err == nil:
		return messages.Notice{Kind: messages.KindSuccess, Text: p.Text(messages.ConnectSuccess, nil)}
	case errors.Is(err, connection.ErrMissingCredentials):
		return messages.Notice{Kind: messages.KindWarning, Text: p.Text(messages.ConnectMissing, nil)}
	default:
		return messages.Notice{Kind: messages.KindError, Text: err.Error()}
	}
}

// SubmitNotice arma el mensaje de un envío. En éxito informa cuántos
// entries incompletos se descartaron al resetear la lista.
func SubmitNotice(p messages.Printer, res submission.Result, err error) messages.Notice {
	var ageErr *submission.AgeError

	switch {
	case err == nil:
		text := p.Count(messages.SubmitSuccess, res.SuccessCount)
		if res.Discarded > 0 {
			text += " " + p.Count(messages.SubmitDiscarded, res.Discarded)
		}
		return messages.Notice{Kind: messages.KindSuccess, Text: text}

	case errors.Is(err, submission.ErrNotConnected):
		return messages.Notice{Kind: messages.KindWarning, Text: p.Text(messages.SubmitNotConnected, nil)}

	case errors.Is(err, submission.ErrNoValidEntries):
		return messages.Notice{Kind: messages.KindWarning, Text: p.Text(messages.SubmitNoValid, nil)}

	case errors.As(err, &ageErr):
		return messages.Notice{Kind: messages.KindWarning, Text: p.Text(messages.SubmitInvalidAge, map[string]any{
			"Position": ageErr.Position,
		})}

	default:
		return messages.Notice{Kind: messages.KindError, Text: p.Text(messages.SubmitError, map[string]any{
			"Detail": err.Error(),
		})}
	}
}

// RemoveNotice solo avisa cuando se intentó borrar el último entry.
func RemoveNotice(p messages.Printer, removed bool) (messages.Notice, bool) {
	if removed {
		return messages.Notice{}, false
	}
	return messages.Notice{Kind: messages.KindWarning, Text: p.Text(messages.EntryRemoveLast, nil)}, true
}
