package wizard

import (
	"log/slog"
	"sync"

	"github.com/mbousquet-onestock/exchange/internal/catalog"
	"github.com/mbousquet-onestock/exchange/internal/models"
)

// Session is one customer's wizard state: the current step, the selected
// articles with their per-article configuration, the chosen return
// method and the editable contact details. All mutation goes through
// the methods below; each handles exactly one user intent.
//
// The wizard itself is single-actor, but sessions are reached from HTTP
// handlers, so every method takes the session lock.
type Session struct {
	mu         sync.Mutex
	catalog    *catalog.Catalog
	step       Step
	selected   map[string]struct{}
	configs    map[string]*models.SelectionConfig
	method     string
	customer   models.CustomerDetails
	submission *models.SubmissionPayload
}

func NewSession(c *catalog.Catalog) *Session {
	s := &Session{catalog: c}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.step = StepSelection
	s.selected = make(map[string]struct{})
	s.configs = make(map[string]*models.SelectionConfig)
	s.method = ""
	s.customer = catalog.DefaultCustomer()
	s.submission = nil
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// ToggleSelection adds or removes an article from the selection. On
// first selection a default config is created; the config survives a
// deselect/reselect cycle so a customer who changes their mind does not
// lose what they already filled in.
func (s *Session) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.Has(id) {
		slog.Debug("toggle for unknown article ignored", "article", id)
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
	s.ensureConfig(id)
}

// ensureConfig creates the default config for id if none exists yet.
// Idempotent; caller holds the lock.
func (s *Session) ensureConfig(id string) {
	if _, ok := s.configs[id]; ok {
		return
	}
	s.configs[id] = &models.SelectionConfig{
		Action:       models.ActionReturn,
		Reason:       catalog.Reasons[0],
		ExchangeType: models.ExchangeSameModel,
	}
}

// EnsureConfig is the exported form of the default-config factory, for
// callers that need a config ahead of a toggle.
func (s *Session) EnsureConfig(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.Has(id) {
		return
	}
	s.ensureConfig(id)
}

func (s *Session) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

func (s *Session) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// SelectedArticles returns the selected articles in catalog order, not
// the order they were clicked in. Configuration and summary views rely
// on this ordering.
func (s *Session) SelectedArticles() []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedArticles()
}

func (s *Session) selectedArticles() []models.Article {
	var out []models.Article
	for _, a := range s.catalog.Articles() {
		if _, ok := s.selected[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Config returns a copy of the config for id, if one exists. A config
// can exist for a currently deselected article; selection membership is
// what IsSelected answers.
func (s *Session) Config(id string) (models.SelectionConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[id]
	if !ok {
		return models.SelectionConfig{}, false
	}
	return *cfg, true
}

// updateConfig applies fn to id's config. An update for an article with
// no config indicates a broken invariant upstream (e.g. the article
// vanished from the catalog mid-session); it is absorbed as a no-op.
func (s *Session) updateConfig(id string, fn func(*models.SelectionConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[id]
	if !ok {
		slog.Debug("config update for article without config ignored", "article", id)
		return
	}
	fn(cfg)
}

func (s *Session) SetAction(id string, action models.ReturnAction) {
	if action != models.ActionReturn && action != models.ActionExchange {
		return
	}
	s.updateConfig(id, func(cfg *models.SelectionConfig) {
		cfg.Action = action
	})
}

func (s *Session) SetReason(id, reason string) {
	if reason == "" {
		return
	}
	s.updateConfig(id, func(cfg *models.SelectionConfig) {
		cfg.Reason = reason
	})
}

func (s *Session) SetExchangeType(id string, t models.ExchangeType) {
	if t != models.ExchangeSameModel && t != models.ExchangeDifferentModel {
		return
	}
	s.updateConfig(id, func(cfg *models.SelectionConfig) {
		cfg.ExchangeType = t
	})
}

func (s *Session) SetExchangeSize(id, size string) {
	s.updateConfig(id, func(cfg *models.SelectionConfig) {
		cfg.ExchangeSize = size
	})
}

func (s *Session) SetExchangeColor(id, color string) {
	s.updateConfig(id, func(cfg *models.SelectionConfig) {
		cfg.ExchangeColor = color
	})
}

// SetExchangeTarget records the different-model exchange target. A
// target equal to the original or absent from the catalog should be
// unreachable (candidate lists exclude both); if it arrives anyway it
// is dropped like any other orphan update.
func (s *Session) SetExchangeTarget(id, targetID string) {
	if targetID == id || !s.catalog.Has(targetID) {
		slog.Debug("invalid exchange target ignored", "article", id, "target", targetID)
		return
	}
	s.updateConfig(id, func(cfg *models.SelectionConfig) {
		cfg.ExchangeArticleID = targetID
	})
}

// Delta computes the price difference for id's different-model
// exchange. ok is false when id is not exchanging for a different
// model or no target is chosen yet.
func (s *Session) Delta(id string) (models.ExchangeDelta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[id]
	if !ok || cfg.Action != models.ActionExchange || cfg.ExchangeType != models.ExchangeDifferentModel {
		return models.ExchangeDelta{}, false
	}
	original, ok := s.catalog.Get(id)
	if !ok {
		return models.ExchangeDelta{}, false
	}
	target, ok := s.catalog.Get(cfg.ExchangeArticleID)
	if !ok {
		return models.ExchangeDelta{}, false
	}
	return ResolveExchangeDelta(original, target), true
}

func (s *Session) Method() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

func (s *Session) SetMethod(id string) {
	if _, ok := catalog.Method(id); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = id
}

func (s *Session) Customer() models.CustomerDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// SetCustomerField replaces one contact field. Values are taken as-is;
// format checks belong to the presentation layer. Unknown field names
// are ignored.
func (s *Session) SetCustomerField(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case "email":
		s.customer.Email = value
	case "phone":
		s.customer.Phone = value
	case "first_name":
		s.customer.FirstName = value
	case "last_name":
		s.customer.LastName = value
	case "address":
		s.customer.Address = value
	case "city":
		s.customer.City = value
	case "zip_code":
		s.customer.ZipCode = value
	case "country":
		s.customer.Country = value
	default:
		slog.Debug("unknown customer field ignored", "field", field)
	}
}

// CanAdvance reports whether Next would move forward from the current
// step. The UI uses it to disable the button instead of surfacing an
// error.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAdvance()
}

func (s *Session) canAdvance() bool {
	switch s.step {
	case StepSelection:
		return len(s.selected) > 0
	case StepConfiguration:
		return s.exchangeTargetsResolved()
	case StepMethod:
		return s.method != ""
	case StepValidation:
		return true
	}
	return false
}

// exchangeTargetsResolved requires every selected article exchanging
// for a different model to actually have a target before leaving the
// configuration step.
func (s *Session) exchangeTargetsResolved() bool {
	for id := range s.selected {
		cfg := s.configs[id]
		if cfg == nil {
			continue
		}
		if cfg.Action == models.ActionExchange &&
			cfg.ExchangeType == models.ExchangeDifferentModel &&
			cfg.ExchangeArticleID == "" {
			return false
		}
	}
	return true
}

// Next advances one step when the current step's guard allows it and
// reports whether it moved. Leaving the review step is the confirm
// action: the submission payload is assembled right before the step
// changes. From the confirmation step Next never moves.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step >= StepConfirmation || !s.canAdvance() {
		return false
	}
	if s.step == StepValidation {
		s.submission = s.buildSubmission()
	}
	s.step++
	return true
}

// Back retreats one step. Disabled on the first step and on the
// terminal confirmation step.
func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step <= StepSelection || s.step >= StepConfirmation {
		return false
	}
	s.step--
	return true
}

// Restart wipes the session back to a fresh one. It is the only way
// out of the confirmation step.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Submission returns the payload built at confirm time, or nil before
// then.
func (s *Session) Submission() *models.SubmissionPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submission
}
