// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mailchimp

import (
	"context"
	"fmt"

	"github.com/dmsclub/newsletter-engine/pkg/types"
)

// CreateDraft runs the full draft sequence: create the campaign, upload
// the HTML body, then fetch the campaign for its web id and build the
// review URL. A content failure after creation is reported with the
// campaign id so the operator can find the half-built draft.
func (c *Client) CreateDraft(ctx context.Context, month, html string) (types.CampaignDraft, error) {
	campaign, err := c.CreateCampaign(ctx, month)
	if err != nil {
		return types.CampaignDraft{}, err
	}

	if err := c.SetContent(ctx, campaign.ID, html); err != nil {
		return types.CampaignDraft{}, fmt.Errorf("campaign %s created but content upload failed: %w", campaign.ID, err)
	}

	fetched, err := c.GetCampaign(ctx, campaign.ID)
	if err != nil {
		return types.CampaignDraft{}, fmt.Errorf("campaign %s created but lookup failed: %w", campaign.ID, err)
	}

	return types.CampaignDraft{
		ID:        fetched.ID,
		WebID:     fetched.WebID,
		ReviewURL: c.ReviewURL(fetched.WebID),
	}, nil
}
