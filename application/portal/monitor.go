package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"fretebot/domain/entities"
)

// MonitorOptions bounds a status watch.
type MonitorOptions struct {
	// PollInterval is the pause between grid reloads; defaults to 30s.
	PollInterval time.Duration
	// MaxWait caps the whole watch; zero means only ctx bounds it.
	MaxWait time.Duration
}

const defaultPollInterval = 30 * time.Second

// statusColumnOffset is where the situation cell sits when the grid has
// no recognizable Situação header: protocol, order, date, then status.
const statusColumnOffset = 3

// MonitorStatus polls the quotes grid until the quote identified by
// protocol and order reaches a final situation, the context is
// cancelled, or MaxWait elapses. A row that is temporarily missing is
// not an error; the watch keeps going in case the portal re-renders it.
func (r *Robot) MonitorStatus(ctx context.Context, sess *Session, cfg entities.PortalConfig, protocolID, orderID string, opts MonitorOptions) entities.AutomationResult {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	if opts.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MaxWait)
		defer cancel()
	}

	page := sess.Page()
	log := r.logger.With(
		zap.String("protocolo", protocolID),
		zap.String("pedido", orderID))
	log.Info("watching quote status", zap.Duration("poll", poll), zap.Duration("max_wait", opts.MaxWait))

	for {
		status, found, err := r.readStatus(page, protocolID, orderID)
		if err != nil {
			r.rec.Capture(page, "monitoramento "+protocolID)
			log.Error("status check failed", zap.Error(err))
			return errorResult(sess, err)
		}

		if !found {
			log.Info("quote row not visible on grid, keeping watch")
		} else {
			switch ClassifyStatus(status) {
			case entities.StatusApproved:
				log.Info("quote approved", zap.String("situacao", status))
				return entities.AutomationResult{
					Success:         true,
					Status:          entities.StatusApproved,
					Message:         fmt.Sprintf("situação final: %s", status),
					UserMessage:     "Agendamento aprovado pelo embarcador.",
					NewSessionState: sess.FreshState(),
				}
			case entities.StatusRejected:
				log.Info("quote rejected", zap.String("situacao", status))
				return entities.AutomationResult{
					Success:         false,
					Status:          entities.StatusRejected,
					Message:         fmt.Sprintf("situação final: %s", status),
					UserMessage:     "Agendamento recusado pelo embarcador. Verifique o portal.",
					NewSessionState: sess.FreshState(),
				}
			default:
				log.Info("quote still processing", zap.String("situacao", status))
			}
		}

		select {
		case <-ctx.Done():
			log.Info("status watch ended without a final situation")
			return entities.AutomationResult{
				Success:         false,
				Status:          entities.StatusTimedOut,
				Message:         "acompanhamento encerrado sem situação final",
				UserMessage:     "O acompanhamento terminou sem uma situação final. Consulte o portal mais tarde.",
				NewSessionState: sess.FreshState(),
			}
		case <-time.After(poll):
		}

		if err := r.reload(page, cfg.NavigationTimeout()); err != nil {
			r.rec.Capture(page, "monitoramento reload "+protocolID)
			log.Error("grid reload failed", zap.Error(err))
			return errorResult(sess, err)
		}
	}
}

func reloadPage(page playwright.Page, timeout time.Duration) error {
	_, err := page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	return err
}

// readQuoteStatus extracts the current situation of the target quote
// from the rendered grid.
func (r *Robot) readQuoteStatus(page playwright.Page, protocolID, orderID string) (string, bool, error) {
	html, err := page.Content()
	if err != nil {
		return "", false, fmt.Errorf("reading page markup: %w", err)
	}
	_, records, err := ParseQuotesTable(html, r.logger)
	if err != nil {
		return "", false, err
	}

	row := FindQuoteRow(records, protocolID, orderID)
	if row == nil {
		return "", false, nil
	}

	if status, ok := row.Get(entities.StatusColumn); ok {
		return status, true, nil
	}
	// grid without a recognizable situation header, fall back to the
	// layout's fixed column position
	if len(row.Fields) > statusColumnOffset {
		return row.Fields[statusColumnOffset].Value, true, nil
	}
	return "", true, nil
}

// ClassifyStatus maps a situation cell onto an outcome. Matching is by
// substring so portal variants like "APROVADO PARCIAL" or "RECUSADO POR
// DOCUMENTO" classify correctly; anything unrecognized counts as still
// processing.
func ClassifyStatus(status string) entities.Status {
	up := strings.ToUpper(strings.TrimSpace(status))
	switch {
	case strings.Contains(up, "APROVADO"):
		return entities.StatusApproved
	case strings.Contains(up, "RECUSADO"):
		return entities.StatusRejected
	default:
		return entities.StatusProcessing
	}
}
