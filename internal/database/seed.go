// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/models"
)

// mockRecommendations is the sample catalogue used for local development.
var mockRecommendations = []models.Recommendation{
	{ProductASKU: "AA0001", ProductBSKU: "AA0002", RecommendationType: models.CrossSell, Likes: 4},
	{ProductASKU: "AA0001", ProductBSKU: "AA0100", RecommendationType: models.UpSell, Likes: 11},
	{ProductASKU: "AA0001", ProductBSKU: "AC0007", RecommendationType: models.Accessory},
	{ProductASKU: "BK2001", ProductBSKU: "BK2002", RecommendationType: models.Bundle, Likes: 2},
	{ProductASKU: "BK2002", ProductBSKU: "BK2001", RecommendationType: models.Bundle},
	{ProductASKU: "CAM-100", ProductBSKU: "CAM-200", RecommendationType: models.UpSell, Likes: 7},
	{ProductASKU: "CAM-100", ProductBSKU: "SD-64GB", RecommendationType: models.Accessory, Likes: 19},
	{ProductASKU: "CAM-100", ProductBSKU: "TRIPOD-1", RecommendationType: models.CrossSell, Likes: 3},
}

// SeedMockData inserts the sample catalogue when the store is empty.
// It returns the number of records inserted.
func SeedMockData(ctx context.Context, store Store) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count before seeding: %w", err)
	}
	if n > 0 {
		logging.Info().Int64("existing", n).Msg("Store already populated, skipping mock data")
		return 0, nil
	}

	inserted := 0
	for i := range mockRecommendations {
		rec := mockRecommendations[i]
		if _, err := store.Insert(ctx, &rec); err != nil {
			var ce *models.ConflictError
			if errors.As(err, &ce) {
				continue
			}
			return inserted, fmt.Errorf("seed %s: %w", rec.String(), err)
		}
		inserted++
	}

	logging.Info().Int("inserted", inserted).Msg("Seeded mock recommendations")
	return inserted, nil
}
