package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coalitionfree/coalition-server-go/internal/catalog"
	"go.uber.org/zap"
)

// CardStore loads card definitions from the cards table into an in-memory
// catalog. The engine only ever sees the immutable catalog; the database is
// read once at startup (and by the import script at content time).
type CardStore struct {
	db *DB
}

// NewCardStore creates a card store over the given database.
func NewCardStore(db *DB) *CardStore {
	return &CardStore{db: db}
}

// LoadCatalog reads every card row and builds a static catalog from it.
func (s *CardStore) LoadCatalog(ctx context.Context) (*catalog.StaticCatalog, error) {
	rows, err := s.db.pool.Query(ctx, `SELECT id, name, kind, definition FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []catalog.Card
	for rows.Next() {
		var (
			id, name, kind string
			definition     []byte
		)
		if err := rows.Scan(&id, &name, &kind, &definition); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}

		card := catalog.Card{ID: id, Name: name, Kind: catalog.Kind(kind)}
		switch card.Kind {
		case catalog.KindCampaign:
			card.Campaign = &catalog.CampaignCard{}
			err = json.Unmarshal(definition, card.Campaign)
		case catalog.KindPolicy:
			card.Policy = &catalog.PolicyCard{}
			err = json.Unmarshal(definition, card.Policy)
		case catalog.KindWildcard:
			card.Wildcard = &catalog.WildcardCard{}
			err = json.Unmarshal(definition, card.Wildcard)
		default:
			return nil, fmt.Errorf("card %s has unknown kind %q", id, kind)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode card %s: %w", id, err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}

	if s.db.logger != nil {
		s.db.logger.Info("card catalog loaded from database", zap.Int("cards", len(cards)))
	}
	return catalog.NewStaticCatalog(cards)
}

// UpsertCard writes one card definition, replacing any existing row.
func (s *CardStore) UpsertCard(ctx context.Context, card catalog.Card) error {
	var definition any
	switch card.Kind {
	case catalog.KindCampaign:
		definition = card.Campaign
	case catalog.KindPolicy:
		definition = card.Policy
	case catalog.KindWildcard:
		definition = card.Wildcard
	default:
		return fmt.Errorf("card %s has unknown kind %q", card.ID, card.Kind)
	}
	payload, err := json.Marshal(definition)
	if err != nil {
		return fmt.Errorf("failed to encode card %s: %w", card.ID, err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO cards (id, name, kind, definition) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET name = $2, kind = $3, definition = $4`,
		card.ID, card.Name, string(card.Kind), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert card %s: %w", card.ID, err)
	}
	return nil
}
