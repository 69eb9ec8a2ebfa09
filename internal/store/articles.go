package store

import (
	"github.com/mbousquet-onestock/exchange/internal/models"
)

// UpsertArticle writes one catalog entry. Position fixes the catalog
// order; the wizard renders articles by it everywhere.
func (s *Store) UpsertArticle(a *models.Article, position int, returnable bool) error {
	query := `
		INSERT INTO articles (id, name, price, currency, color, size, sku, image_url, status, quantity, position, returnable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			currency = excluded.currency,
			color = excluded.color,
			size = excluded.size,
			sku = excluded.sku,
			image_url = excluded.image_url,
			status = excluded.status,
			quantity = excluded.quantity,
			position = excluded.position,
			returnable = excluded.returnable
	`
	ret := 0
	if returnable {
		ret = 1
	}
	_, err := s.DB.Exec(query,
		a.ID, a.Name, a.Price.String(), a.Currency, a.Color, a.Size,
		a.Sku, a.ImageURL, a.Status, a.Quantity, position, ret)
	return err
}

// SeedArticles loads a full mock catalog, all returnable, in slice
// order.
func (s *Store) SeedArticles(articles []models.Article) error {
	for i, a := range articles {
		if err := s.UpsertArticle(&a, i, true); err != nil {
			return err
		}
	}
	return nil
}

// GetReturnableArticles returns the articles eligible for the wizard,
// in catalog order.
func (s *Store) GetReturnableArticles() ([]models.Article, error) {
	query := `
		SELECT id, name, price, currency, color, size, sku, image_url, status, quantity
		FROM articles
		WHERE returnable = 1
		ORDER BY position ASC
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.Currency, &a.Color, &a.Size,
			&a.Sku, &a.ImageURL, &a.Status, &a.Quantity); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (s *Store) CountArticles() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count)
	return count, err
}
