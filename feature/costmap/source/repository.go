package source

import (
	"context"
	"fmt"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"

	"gorm.io/gorm"
)

// modelElement mirrors one row of the model element table. The columns are
// written by the ingestion pipeline; NULL quantities arrive as zero.
type modelElement struct {
	GlobalID string  `gorm:"column:global_id"`
	Code     string  `gorm:"column:ebkp_code"`
	Area     float64 `gorm:"column:area"`
	Length   float64 `gorm:"column:length"`
	Volume   float64 `gorm:"column:volume"`
}

// Repository loads model elements from the database.
type Repository struct {
	db    *gorm.DB
	table string
}

// NewRepository creates a repository reading from the given table.
func NewRepository(db *gorm.DB, table string) *Repository {
	return &Repository{db: db, table: table}
}

// LoadElements returns every model element in the table.
func (r *Repository) LoadElements(ctx context.Context) ([]element.Element, error) {
	var rows []modelElement
	if err := r.db.WithContext(ctx).Table(r.table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load model elements: %w", err)
	}

	out := make([]element.Element, 0, len(rows))
	for _, row := range rows {
		out = append(out, element.Element{
			ID:   row.GlobalID,
			Code: row.Code,
			Quantities: map[element.Kind]float64{
				element.KindArea:   row.Area,
				element.KindLength: row.Length,
				element.KindVolume: row.Volume,
			},
		})
	}
	return out, nil
}
