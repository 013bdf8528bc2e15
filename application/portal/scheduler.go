package portal

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"fretebot/domain/entities"
	"fretebot/infrastructure/browser"
)

// Scheduling form selectors. Like the login ids, these are JSF-generated
// and drift between portal releases; the probe lists below exist
// because of that.
const (
	labelScheduleAction = "Agendar Pedido"

	selRevealForm  = `[id$=":j_idt29"]`
	selDriverPanel = `[id="form-minhas-cotacoes:j_idt126"]`
	selDriverFrame = `iframe[title="Cadastro de Motorista Autônomo"]`

	selTruckUFLabel  = `[id="form-minhas-cotacoes:uf-placa_label"]`
	selBodyTypeLabel = `[id="form-minhas-cotacoes:tipoCarroceria_label"]`

	labelSearchButton  = " Pesquisar"
	labelSelectButton  = " Selecionar"
	labelConfirmButton = " Sim"
	labelSaveButton    = " Salvar"

	fieldTimeout  = 10 * time.Second
	branchTimeout = 5 * time.Second

	// the CPF input rejects instant fills, characters go in one by one
	maskedTypeDelay = 100 * time.Millisecond
)

// Trailer field names as the form renders them. Only the first slot
// carries the required-field asterisk.
var (
	trailerPlateFields = [entities.MaxTrailers]string{"Placa Reboque 1*", "Placa Reboque 2", "Placa Reboque 3"}
	trailerUFLabels    = [entities.MaxTrailers]string{
		`[id="form-minhas-cotacoes:uf-reboque_label"]`,
		`[id="form-minhas-cotacoes:uf-reboque-2_label"]`,
		`[id="form-minhas-cotacoes:uf-reboque-3_label"]`,
	}
)

// SubmitSchedule books one quote: locate the grid row by protocol and
// order number, fill the scheduling form, register the driver, and, in
// live mode only, confirm the booking. In dry-run mode every step runs
// except the final save.
//
// Optional fields that are absent from the request or from the form are
// logged and skipped; only structural failures (row actions, the driver
// dialog, the save control) abort the run.
func (r *Robot) SubmitSchedule(ctx context.Context, sess *Session, cfg entities.PortalConfig, req entities.ScheduleRequest) entities.AutomationResult {
	if err := req.Validate(); err != nil {
		return entities.AutomationResult{
			Success:     false,
			Status:      entities.StatusError,
			Message:     fmt.Sprintf("%v: %v", ErrPrecondition, err),
			UserMessage: "Dados do agendamento incompletos: " + err.Error(),
		}
	}
	if err := ctx.Err(); err != nil {
		return errorResult(sess, err)
	}

	page := sess.Page()
	log := r.logger.With(
		zap.String("protocolo", req.ProtocolID),
		zap.String("pedido", req.OrderID))

	row := page.Locator(compositeRowSelector(req.ProtocolID, req.OrderID))
	count, err := row.Count()
	if err != nil {
		r.rec.Capture(page, "agendamento busca linha")
		log.Error("could not inspect quotes grid", zap.Error(err))
		return errorResult(sess, err)
	}
	if count == 0 {
		log.Info("no grid row for this protocol and order, nothing to schedule")
		return entities.AutomationResult{
			Success:         false,
			Status:          entities.StatusNotApplicable,
			Message:         fmt.Sprintf("sem agenda no site para protocolo %s e pedido %s", req.ProtocolID, req.OrderID),
			UserMessage:     fmt.Sprintf("Não há agenda disponível no site para o protocolo %s e pedido %s.", req.ProtocolID, req.OrderID),
			NewSessionState: sess.FreshState(),
		}
	}

	if err := r.fillAndSubmit(page, cfg, req, row.First(), log); err != nil {
		r.rec.Capture(page, "agendamento "+req.ProtocolID)
		log.Error("scheduling automation failed", zap.Error(err))
		return errorResult(sess, err)
	}

	message := "agendamento enviado, aguardando aprovação do embarcador"
	userMessage := "Agendamento enviado. Aguarde a aprovação no portal."
	if !cfg.Live() {
		message = "agendamento validado; confirmação final não executada (dry-run)"
		userMessage = "Agendamento validado sem confirmação final (modo de teste)."
	}

	return entities.AutomationResult{
		Success:         true,
		Status:          entities.StatusProcessing,
		Message:         message,
		UserMessage:     userMessage,
		NewSessionState: sess.FreshState(),
	}
}

func (r *Robot) fillAndSubmit(page playwright.Page, cfg entities.PortalConfig, req entities.ScheduleRequest, row playwright.Locator, log *zap.Logger) error {
	// open the scheduling form from the row
	schedule := row.GetByText(labelScheduleAction)
	if err := schedule.First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(fieldTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("opening scheduling action: %w", err)
	}

	reveal := row.Locator(selRevealForm).First()
	if err := reveal.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(fieldTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("revealing scheduling form: %w", err)
	}
	log.Info("scheduling form opened")

	// contact block
	r.fillTextField(page, "Contato*", req.ContactName, log)
	if req.ContactPhone != "" {
		ddd, number, ok := splitPhone(req.ContactPhone)
		if !ok {
			log.Warn("contact phone not in (DD) NNNN-NNNN format, skipping",
				zap.String("telefone", req.ContactPhone))
		} else {
			r.fillTextField(page, "DDD*", ddd, log)
			r.fillTextField(page, "Telefone*", number, log)
		}
	}

	// vehicle block
	r.fillTextField(page, "Placa*", req.Vehicle.Plate, log)
	r.selectDropdown(page, selTruckUFLabel, req.Vehicle.State, "UF da placa", log)
	r.selectDropdown(page, selBodyTypeLabel, req.Vehicle.BodyType, "tipo de carroceria", log)

	for i, trailer := range req.Vehicle.Trailers {
		if i >= entities.MaxTrailers {
			break
		}
		r.fillTextField(page, trailerPlateFields[i], trailer.Plate, log)
		r.selectDropdown(page, trailerUFLabels[i], trailer.State, fmt.Sprintf("UF do reboque %d", i+1), log)
	}

	// driver dialog
	if err := r.registerDriver(page, req.Driver, log); err != nil {
		return err
	}

	return r.commit(page, cfg, log)
}

// registerDriver opens the driver panel and works inside its iframe:
// type the CPF, search, then either pick the existing driver or confirm
// creating a new one.
func (r *Robot) registerDriver(page playwright.Page, driver entities.Driver, log *zap.Logger) error {
	panel := page.Locator(selDriverPanel)
	if err := panel.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(fieldTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("opening driver panel: %w", err)
	}

	if err := page.Locator(selDriverFrame).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64((15 * time.Second).Milliseconds())),
	}); err != nil {
		return fmt.Errorf("driver dialog iframe never appeared: %w", err)
	}
	frame := page.FrameLocator(selDriverFrame)

	cpfInput, err := r.findCPFInput(frame)
	if err != nil {
		return err
	}

	digits := onlyDigits(driver.NationalID)
	if err := cpfInput.Click(); err != nil {
		return fmt.Errorf("focusing CPF input: %w", err)
	}
	if err := cpfInput.PressSequentially(digits, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(float64(maskedTypeDelay.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("typing CPF: %w", err)
	}

	search := frame.GetByRole(*playwright.AriaRoleButton, playwright.FrameLocatorGetByRoleOptions{
		Name: labelSearchButton,
	})
	if err := search.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(fieldTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("searching driver by CPF: %w", err)
	}

	// known driver shows a pick button; unknown driver asks for
	// confirmation before registering
	selectBtn := frame.GetByRole(*playwright.AriaRoleButton, playwright.FrameLocatorGetByRoleOptions{
		Name: labelSelectButton,
	})
	if err := selectBtn.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(branchTimeout.Milliseconds())),
	}); err == nil {
		log.Info("existing driver selected", zap.String("cpf", digits))
		return nil
	}

	log.Info("driver not registered yet, confirming new registration", zap.String("cpf", digits))
	confirm := frame.GetByRole(*playwright.AriaRoleButton, playwright.FrameLocatorGetByRoleOptions{
		Name: labelConfirmButton,
	})
	if err := confirm.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(branchTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("neither %q nor %q became available after CPF search: %w",
			labelSelectButton, labelConfirmButton, err)
	}
	return nil
}

// findCPFInput probes the driver dialog for its CPF field. The input's
// id and name change between releases, so several selectors are tried
// in order, ending with the accessible-name and placeholder fallbacks.
func (r *Robot) findCPFInput(frame playwright.FrameLocator) (playwright.Locator, error) {
	locators := []playwright.Locator{
		frame.Locator(`input[id*='Cpf']`),
		frame.Locator(`input[name*='Cpf']`),
		frame.Locator(`input[id*='cpf']`),
		frame.Locator(`input[name*='cpf']`),
		frame.GetByRole(*playwright.AriaRoleTextbox, playwright.FrameLocatorGetByRoleOptions{
			Name: "___.___.___-__",
		}),
		frame.GetByPlaceholder("Nro.Cpf"),
	}
	descriptions := []string{
		"input[id*='Cpf']",
		"input[name*='Cpf']",
		"input[id*='cpf']",
		"input[name*='cpf']",
		"textbox named ___.___.___-__",
		"placeholder Nro.Cpf",
	}

	candidates := make([]browser.Candidate, len(locators))
	for i := range locators {
		candidates[i] = browser.LocatorCandidate(descriptions[i], locators[i].First())
	}
	idx, err := browser.FirstVisible(r.logger, candidates)
	if err != nil {
		return nil, fmt.Errorf("CPF field not found in driver dialog: %w", err)
	}
	return locators[idx].First(), nil
}

// saveControl is the slice of the save button pressSave needs, kept
// narrow so the commit decision can be tested without a live page.
type saveControl interface {
	WaitFor(options ...playwright.LocatorWaitForOptions) error
	Click(options ...playwright.LocatorClickOptions) error
}

// commit locates the save control and drives the final step of the
// form. Only a live run ever clicks it.
func (r *Robot) commit(page playwright.Page, cfg entities.PortalConfig, log *zap.Logger) error {
	save := page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: labelSaveButton,
	}).First()

	clicked, err := r.pressSave(save, cfg, log)
	if err != nil {
		return err
	}
	if !clicked {
		return nil
	}

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(cfg.NavigationTimeout().Milliseconds())),
	}); err != nil {
		log.Warn("page did not settle after save, confirm the booking on the portal", zap.Error(err))
	}
	log.Info("schedule confirmed on portal")
	return nil
}

// pressSave asserts the save control is visible in every mode, then
// clicks it only when the run is live. The returned flag reports
// whether a click happened.
func (r *Robot) pressSave(save saveControl, cfg entities.PortalConfig, log *zap.Logger) (bool, error) {
	if err := save.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(fieldTimeout.Milliseconds())),
	}); err != nil {
		return false, fmt.Errorf("save button never became visible: %w", err)
	}

	if !cfg.Live() {
		log.Info("dry-run mode, final save intentionally skipped")
		return false, nil
	}

	if err := save.Click(); err != nil {
		return false, fmt.Errorf("confirming schedule: %w", err)
	}
	return true, nil
}

// fillTextField fills a form textbox by its accessible name. Missing
// request values and missing form fields are logged and skipped; the
// portal hides fields the quote does not need.
func (r *Robot) fillTextField(page playwright.Page, field, value string, log *zap.Logger) {
	if strings.TrimSpace(value) == "" {
		log.Debug("field empty in request, skipping", zap.String("campo", field))
		return
	}
	input := page.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{
		Name: field,
	})
	if err := input.Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(float64(fieldTimeout.Milliseconds())),
	}); err != nil {
		log.Warn("field could not be filled, moving on",
			zap.String("campo", field), zap.Error(err))
		return
	}
	log.Debug("field filled", zap.String("campo", field))
}

func (r *Robot) selectDropdown(page playwright.Page, labelSelector, value, description string, log *zap.Logger) {
	if strings.TrimSpace(value) == "" {
		log.Debug("dropdown value empty in request, skipping", zap.String("campo", description))
		return
	}
	if err := browser.SelectByDataLabel(page, labelSelector, value); err != nil {
		log.Warn("dropdown could not be set, moving on",
			zap.String("campo", description), zap.Error(err))
		return
	}
	log.Debug("dropdown set", zap.String("campo", description), zap.String("valor", value))
}

func errorResult(sess *Session, err error) entities.AutomationResult {
	return entities.AutomationResult{
		Success:         false,
		Status:          entities.StatusError,
		Message:         err.Error(),
		UserMessage:     UserMessage(err),
		NewSessionState: sess.FreshState(),
	}
}

var phonePattern = regexp.MustCompile(`\((\d{2})\)\s*(.*)`)

// splitPhone splits "(41) 99999-0000" into its DDD and number parts.
func splitPhone(phone string) (ddd, number string, ok bool) {
	m := phonePattern.FindStringSubmatch(strings.TrimSpace(phone))
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

func onlyDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
