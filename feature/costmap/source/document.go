package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/storage"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/utils"

	"github.com/minio/minio-go/v7"
)

// exportRow is one element of the JSON export. Quantities arrive as JSON
// numbers or strings depending on the producing pipeline.
type exportRow struct {
	ID     any    `json:"id"`
	Code   string `json:"ebkp"`
	Area   any    `json:"area"`
	Length any    `json:"length"`
	Volume any    `json:"volume"`
}

// DecodeElements decodes a model element export stream. The same format is
// read from object storage and from local files in offline runs.
func DecodeElements(r io.Reader) ([]element.Element, error) {
	var rows []exportRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode element export: %w", err)
	}

	out := make([]element.Element, 0, len(rows))
	for _, row := range rows {
		out = append(out, element.Element{
			ID:   utils.ToString(row.ID),
			Code: row.Code,
			Quantities: map[element.Kind]float64{
				element.KindArea:   utils.ToFloat(row.Area),
				element.KindLength: utils.ToFloat(row.Length),
				element.KindVolume: utils.ToFloat(row.Volume),
			},
		})
	}
	return out, nil
}

// DocumentLoader reads a model element export from object storage. It is the
// fallback source when no database connection is available.
type DocumentLoader struct {
	client storage.Client
	bucket string
	object string
}

// NewDocumentLoader creates a loader for the given export object.
func NewDocumentLoader(client storage.Client, bucket, object string) *DocumentLoader {
	return &DocumentLoader{client: client, bucket: bucket, object: object}
}

// LoadElements fetches and decodes the export object.
func (l *DocumentLoader) LoadElements(ctx context.Context) ([]element.Element, error) {
	obj, err := l.client.GetObject(ctx, l.bucket, l.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch element export %q: %w", l.object, err)
	}
	defer obj.Close()

	elements, err := DecodeElements(obj)
	if err != nil {
		return nil, fmt.Errorf("element export %q: %w", l.object, err)
	}
	return elements, nil
}
