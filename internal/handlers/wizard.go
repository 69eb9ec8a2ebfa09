package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/mbousquet-onestock/exchange/internal/catalog"
	"github.com/mbousquet-onestock/exchange/internal/models"
	"github.com/mbousquet-onestock/exchange/internal/store"
	"github.com/mbousquet-onestock/exchange/internal/wizard"
)

const wizardCookie = "return-session"

// WizardHandler renders the current step of the returns wizard and
// translates form posts into discrete intents on the wizard session.
type WizardHandler struct {
	Store        *store.Store
	Catalog      *catalog.Catalog
	Sessions     *wizard.Registry
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// session resolves the caller's wizard session from the cookie,
// minting an id on first visit.
func (h *WizardHandler) session(w http.ResponseWriter, r *http.Request) (*wizard.Session, *sessions.Session) {
	cookie, _ := h.SessionStore.Get(r, wizardCookie)
	id, ok := cookie.Values["wizard_id"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		cookie.Values["wizard_id"] = id
		if err := cookie.Save(r, w); err != nil {
			slog.Error("Failed to save session cookie", "error", err)
		}
	}
	return h.Sessions.GetOrCreate(id), cookie
}

type stepView struct {
	Number int
	Label  string
	Active bool
	Done   bool
}

type articleView struct {
	models.Article
	Selected bool
}

type configView struct {
	Article          models.Article
	Config           models.SelectionConfig
	EffectiveSize    string
	EffectiveColor   string
	IsExchange       bool
	IsSameModel      bool
	IsDifferentModel bool
	Candidates       []models.Article
	Delta            *models.ExchangeDelta
}

type methodView struct {
	models.ReturnMethod
	Selected bool
}

type summaryLineView struct {
	Article       models.Article
	Config        models.SelectionConfig
	IsExchange    bool
	ExchangeLabel string
	Delta         *models.ExchangeDelta
}

// Show renders whichever page the wizard session is on. There is one
// URL; the step drives the view.
func (h *WizardHandler) Show(w http.ResponseWriter, r *http.Request) {
	ws, cookie := h.session(w, r)

	data := map[string]interface{}{
		"Step":       int(ws.Step()),
		"Steps":      h.stepper(ws.Step()),
		"CanAdvance": ws.CanAdvance(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(cookie),
	}
	cookie.Save(r, w)

	var name string
	switch ws.Step() {
	case wizard.StepSelection:
		name = "selection.html"
		var views []articleView
		for _, a := range h.Catalog.Articles() {
			views = append(views, articleView{Article: a, Selected: ws.IsSelected(a.ID)})
		}
		data["Articles"] = views
	case wizard.StepConfiguration:
		name = "configuration.html"
		data["Items"] = h.configViews(ws)
		data["Reasons"] = catalog.Reasons
		data["Sizes"] = catalog.Sizes
		data["Colors"] = catalog.Colors
	case wizard.StepMethod:
		name = "method.html"
		var views []methodView
		for _, m := range catalog.Methods {
			views = append(views, methodView{ReturnMethod: m, Selected: ws.Method() == m.ID})
		}
		data["Methods"] = views
	case wizard.StepValidation:
		name = "validation.html"
		data["Customer"] = ws.Customer()
		data["Summary"] = h.summaryViews(ws)
		if m, ok := catalog.Method(ws.Method()); ok {
			data["Method"] = m
		}
	case wizard.StepConfirmation:
		name = "confirmation.html"
		data["Customer"] = ws.Customer()
		if p := ws.Submission(); p != nil {
			data["Reference"] = p.Reference
			data["LineCount"] = len(p.Lines)
		}
	default:
		http.Error(w, "Unknown wizard step", http.StatusInternalServerError)
		return
	}

	h.render(w, name, data)
}

func (h *WizardHandler) stepper(current wizard.Step) []stepView {
	steps := []wizard.Step{
		wizard.StepSelection, wizard.StepConfiguration, wizard.StepMethod,
		wizard.StepValidation, wizard.StepConfirmation,
	}
	var views []stepView
	for _, s := range steps {
		views = append(views, stepView{
			Number: int(s),
			Label:  s.Label(),
			Active: s == current,
			Done:   s < current,
		})
	}
	return views
}

func (h *WizardHandler) configViews(ws *wizard.Session) []configView {
	var views []configView
	for _, a := range ws.SelectedArticles() {
		cfg, ok := ws.Config(a.ID)
		if !ok {
			continue
		}
		v := configView{
			Article:          a,
			Config:           cfg,
			EffectiveSize:    wizard.EffectiveExchangeSize(cfg, a),
			EffectiveColor:   wizard.EffectiveExchangeColor(cfg, a),
			IsExchange:       cfg.Action == models.ActionExchange,
			IsSameModel:      cfg.ExchangeType == models.ExchangeSameModel,
			IsDifferentModel: cfg.ExchangeType == models.ExchangeDifferentModel,
			Candidates:       h.Catalog.ExchangeCandidates(a.ID),
		}
		if d, ok := ws.Delta(a.ID); ok {
			v.Delta = &d
		}
		views = append(views, v)
	}
	return views
}

func (h *WizardHandler) summaryViews(ws *wizard.Session) []summaryLineView {
	var views []summaryLineView
	for _, a := range ws.SelectedArticles() {
		cfg, ok := ws.Config(a.ID)
		if !ok {
			continue
		}
		v := summaryLineView{
			Article:    a,
			Config:     cfg,
			IsExchange: cfg.Action == models.ActionExchange,
		}
		if v.IsExchange {
			if cfg.ExchangeType == models.ExchangeDifferentModel {
				if target, ok := h.Catalog.Get(cfg.ExchangeArticleID); ok {
					v.ExchangeLabel = target.Name
				}
				if d, ok := ws.Delta(a.ID); ok {
					v.Delta = &d
				}
			} else {
				v.ExchangeLabel = wizard.EffectiveExchangeSize(cfg, a) + " / " + wizard.EffectiveExchangeColor(cfg, a)
			}
		}
		views = append(views, v)
	}
	return views
}

func (h *WizardHandler) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
	}
}

// ToggleItem flips one article in or out of the selection.
func (h *WizardHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	ws, _ := h.session(w, r)
	if err := r.ParseForm(); err == nil {
		ws.ToggleSelection(r.FormValue("article_id"))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateConfig applies whichever config fields the form carried for one
// article. Fields not posted stay as they were.
func (h *WizardHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	ws, _ := h.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	id := r.FormValue("article_id")
	if v := r.FormValue("action"); v != "" {
		ws.SetAction(id, models.ReturnAction(v))
	}
	if v := r.FormValue("reason"); v != "" {
		ws.SetReason(id, v)
	}
	if v := r.FormValue("exchange_type"); v != "" {
		ws.SetExchangeType(id, models.ExchangeType(v))
	}
	if v := r.FormValue("exchange_size"); v != "" {
		ws.SetExchangeSize(id, v)
	}
	if v := r.FormValue("exchange_color"); v != "" {
		ws.SetExchangeColor(id, v)
	}
	if v := r.FormValue("exchange_article_id"); v != "" {
		ws.SetExchangeTarget(id, v)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ChooseMethod records the return method pick.
func (h *WizardHandler) ChooseMethod(w http.ResponseWriter, r *http.Request) {
	ws, _ := h.session(w, r)
	if err := r.ParseForm(); err == nil {
		ws.SetMethod(r.FormValue("method"))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Next advances the wizard. Guard failures just stay put; the button is
// disabled in the UI anyway.
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	ws, _ := h.session(w, r)
	ws.Next()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Back retreats one step.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	ws, _ := h.session(w, r)
	ws.Back()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

var customerFields = []string{
	"email", "phone", "first_name", "last_name",
	"address", "city", "zip_code", "country",
}

// Confirm is the review page's submit: it applies the posted contact
// fields, performs the terminal Next, persists the built payload and
// "sends" the confirmation email.
func (h *WizardHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ws, cookie := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		cookie.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		cookie.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	for _, f := range customerFields {
		if r.Form.Has(f) {
			ws.SetCustomerField(f, r.FormValue(f))
		}
	}

	if ws.Step() != wizard.StepValidation || !ws.Next() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	payload := ws.Submission()
	if payload == nil {
		// Next from the review step always builds a payload.
		slog.Error("Confirm advanced without a submission payload")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Persistence is best-effort; the customer already confirmed and the
	// payload is the contract, so a storage hiccup only gets logged.
	if err := h.Store.CreateRequest(payload); err != nil {
		slog.Error("Failed to persist return request", "reference", payload.Reference, "error", err)
	}

	// MOCK EMAIL SENDING
	slog.Info("==========================================")
	slog.Info("📧 EMAIL SENT TO: " + payload.Customer.Email)
	slog.Info("Subject: Return/Exchange Request Confirmation")
	slog.Info("Request Reference: " + payload.Reference)
	slog.Info("Items: " + itemSummary(payload))
	slog.Info("==========================================")

	cookie.AddFlash(FlashMessage{Type: "success", Message: "Request submitted successfully!"})
	cookie.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func itemSummary(p *models.SubmissionPayload) string {
	out := ""
	for i, line := range p.Lines {
		if i > 0 {
			out += ", "
		}
		out += line.Name + " (" + string(line.Action) + ")"
	}
	return out
}

// Cancel abandons the wizard with no side effects: the session is
// dropped and the customer lands back on a fresh first step.
func (h *WizardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	_, cookie := h.session(w, r)
	if id, ok := cookie.Values["wizard_id"].(string); ok {
		h.Sessions.Drop(id)
	}
	delete(cookie.Values, "wizard_id")
	cookie.AddFlash(FlashMessage{Type: "info", Message: "Request cancelled."})
	cookie.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Restart resets a finished wizard back to defaults.
func (h *WizardHandler) Restart(w http.ResponseWriter, r *http.Request) {
	ws, _ := h.session(w, r)
	ws.Restart()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
