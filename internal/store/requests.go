package store

import (
	"fmt"

	"github.com/mbousquet-onestock/exchange/internal/models"
)

// CreateRequest persists a confirmed submission: one header row plus
// one row per line, in a single transaction.
func (s *Store) CreateRequest(p *models.SubmissionPayload) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO return_requests (id, reference, method, email, phone, first_name, last_name, address, city, zip_code, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Reference, p.MethodID,
		p.Customer.Email, p.Customer.Phone, p.Customer.FirstName, p.Customer.LastName,
		p.Customer.Address, p.Customer.City, p.Customer.ZipCode, p.Customer.Country,
		p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert request %s: %w", p.Reference, err)
	}

	for _, line := range p.Lines {
		var (
			exType, exSize, exColor, exTarget string
			deltaKind, deltaAmount            string
		)
		if line.Exchange != nil {
			exType = string(line.Exchange.Type)
			exSize = line.Exchange.Size
			exColor = line.Exchange.Color
			exTarget = line.Exchange.TargetArticleID
			if line.Exchange.Delta != nil {
				deltaKind = string(line.Exchange.Delta.Kind)
				deltaAmount = line.Exchange.Delta.Amount.String()
			}
		}
		_, err = tx.Exec(`
			INSERT INTO return_request_lines (request_id, article_id, sku, name, quantity, action, reason, exchange_type, exchange_size, exchange_color, exchange_target, delta_kind, delta_amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, line.ArticleID, line.Sku, line.Name, line.Quantity,
			string(line.Action), line.Reason,
			exType, exSize, exColor, exTarget, deltaKind, deltaAmount)
		if err != nil {
			return fmt.Errorf("failed to insert request line for %s: %w", line.ArticleID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) CountRequests() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM return_requests`).Scan(&count)
	return count, err
}

// GetRequestLineCount is a cheap integrity check used after submit.
func (s *Store) GetRequestLineCount(requestID string) (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM return_request_lines WHERE request_id = ?`, requestID).Scan(&count)
	return count, err
}
