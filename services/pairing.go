package services

import (
	"errors"
	"fmt"
	"time"

	"cleansweep-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformedRow means a completed row was missing one of its halves; it
// is surfaced instead of silently producing a half-populated pair.
var ErrMalformedRow = errors.New("completed row is missing its report or cleanup half")

// CompletedRow is the flat shape a report joined with its cleanup comes
// back from the database in.
type CompletedRow struct {
	ID           primitive.ObjectID
	Image        []byte
	Description  string
	Location     *models.Coordinates
	Contributor  string
	CreatedAt    time.Time
	CleanupID    primitive.ObjectID
	CleanupImage []byte
	CleanupAt    time.Time
}

// PairRows reshapes flat joined rows into the nested review pairs the
// dashboards render. It is a structural transform only: rows are trusted
// to be joined 1:1 already, and no re-matching by id or proximity happens
// here.
func PairRows(rows []CompletedRow) ([]models.ReportPair, error) {
	pairs := make([]models.ReportPair, 0, len(rows))
	for _, row := range rows {
		if row.ID.IsZero() || row.CleanupID.IsZero() {
			return nil, fmt.Errorf("%w (report %s)", ErrMalformedRow, row.ID.Hex())
		}
		pairs = append(pairs, models.ReportPair{
			ID:          row.ID,
			Contributor: row.Contributor,
			BeforeReport: models.PairedBefore{
				ID:          row.ID,
				ImageBase64: EncodeImageDataURI(row.Image),
				Description: row.Description,
				Location:    row.Location,
				Timestamp:   row.CreatedAt,
			},
			AfterReport: models.PairedAfter{
				ID:          row.CleanupID,
				ImageBase64: EncodeImageDataURI(row.CleanupImage),
				Timestamp:   row.CleanupAt,
			},
		})
	}
	return pairs, nil
}
