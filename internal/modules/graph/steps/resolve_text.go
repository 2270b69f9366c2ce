package steps

import (
	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
)

type resolvedText struct {
	Text string
	Tier string
}

// pickTier applies the tier thresholds to already-fetched candidates:
// the first tier yielding >= usableTextMin wins outright; otherwise the
// longest candidate is used if it clears the extractableTextMin floor.
func pickTier(body string, chunks string, legacy string) resolvedText {
	cands := []resolvedText{
		{Text: body, Tier: tierBody},
		{Text: chunks, Tier: tierChunks},
		{Text: legacy, Tier: tierLegacy},
	}
	best := resolvedText{Tier: tierNone}
	for _, c := range cands {
		if len(c.Text) >= usableTextMin {
			return c
		}
		if len(c.Text) > len(best.Text) {
			best = c
		}
	}
	if len(best.Text) >= extractableTextMin {
		return best
	}
	return resolvedText{Tier: tierNone}
}

// resolveDocumentText walks the fallback chain lazily: chunks are only
// fetched when the body is not usable, legacy rows only when chunks are
// not either.
func resolveDocumentText(dbc dbctx.Context, deps ExtractBatchDeps, doc *types.SourceDocument) (resolvedText, error) {
	body := joinParts([]string{doc.Body})
	if len(body) >= usableTextMin {
		return resolvedText{Text: body, Tier: tierBody}, nil
	}

	chunkRows, err := deps.Chunks.GetBySourceID(dbc, doc.ID, maxChunksPerDocument)
	if err != nil {
		return resolvedText{}, err
	}
	chunkParts := make([]string, 0, len(chunkRows))
	for _, ch := range chunkRows {
		if ch != nil {
			chunkParts = append(chunkParts, ch.Content)
		}
	}
	chunks := joinParts(chunkParts)
	if len(chunks) >= usableTextMin {
		return resolvedText{Text: chunks, Tier: tierChunks}, nil
	}

	legacyRows, err := deps.Legacy.GetByTitle(dbc, doc.Title, maxLegacyRecords)
	if err != nil {
		return resolvedText{}, err
	}
	legacyParts := make([]string, 0, len(legacyRows))
	for _, lr := range legacyRows {
		if lr != nil {
			legacyParts = append(legacyParts, lr.Content)
		}
	}
	legacy := joinParts(legacyParts)

	return pickTier(body, chunks, legacy), nil
}
