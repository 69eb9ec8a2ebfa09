package catalog

import (
	"github.com/mbousquet-onestock/exchange/internal/models"
)

// Catalog is the read-only, ordered article collection the wizard works
// against. Order is the order articles were purchased in; it drives the
// configuration and summary rendering order.
type Catalog struct {
	articles []models.Article
	byID     map[string]int
}

func New(articles []models.Article) *Catalog {
	c := &Catalog{
		articles: make([]models.Article, len(articles)),
		byID:     make(map[string]int, len(articles)),
	}
	copy(c.articles, articles)
	for i, a := range c.articles {
		c.byID[a.ID] = i
	}
	return c
}

// Articles returns the returnable articles in catalog order.
func (c *Catalog) Articles() []models.Article {
	out := make([]models.Article, len(c.articles))
	copy(out, c.articles)
	return out
}

func (c *Catalog) Len() int {
	return len(c.articles)
}

func (c *Catalog) Get(id string) (models.Article, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Article{}, false
	}
	return c.articles[i], true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// ExchangeCandidates lists the articles a given article can be exchanged
// for. The original is excluded here so a self-exchange can never be
// offered, let alone chosen.
func (c *Catalog) ExchangeCandidates(id string) []models.Article {
	var out []models.Article
	for _, a := range c.articles {
		if a.ID == id {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Method looks up a return method by id.
func Method(id string) (models.ReturnMethod, bool) {
	for _, m := range Methods {
		if m.ID == id {
			return m, true
		}
	}
	return models.ReturnMethod{}, false
}
