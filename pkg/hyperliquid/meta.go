package hyperliquid

import (
	"context"
	"strings"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"
)

// Spot asset ids are offset from the pair index.
const spotAssetOffset = 10000

func canonicalSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ResolveAsset maps a symbol to its universe entry, loading the directory
// lazily on first touch. Lookups are case-insensitive.
func (c *Client) ResolveAsset(ctx context.Context, instrument Instrument, symbol string) (Asset, error) {
	key := canonicalSymbol(symbol)
	if key == "" {
		return Asset{}, newError(ErrUnknownSymbol, "empty symbol")
	}

	assets, err := c.assetsFor(ctx, instrument)
	if err != nil {
		return Asset{}, err
	}
	if asset, ok := assets[key]; ok {
		return asset, nil
	}
	return Asset{}, newError(ErrUnknownSymbol, "symbol %q not in %s universe", symbol, instrument)
}

// SzDecimals returns the size precision of a symbol.
func (c *Client) SzDecimals(ctx context.Context, instrument Instrument, symbol string) (int, error) {
	asset, err := c.ResolveAsset(ctx, instrument, symbol)
	if err != nil {
		return 0, err
	}
	return asset.SzDecimals, nil
}

func (c *Client) assetsFor(ctx context.Context, instrument Instrument) (map[string]Asset, error) {
	c.metaMu.RLock()
	var cached map[string]Asset
	switch instrument {
	case Spot:
		cached = c.spotAssets
	default:
		cached = c.perpAssets
	}
	c.metaMu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	if instrument == Spot {
		return c.refreshSpotMeta(ctx)
	}
	return c.refreshPerpMeta(ctx)
}

// refreshPerpMeta fetches the perp universe and swaps the cache whole.
func (c *Client) refreshPerpMeta(ctx context.Context) (map[string]Asset, error) {
	var meta perpMeta
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "meta"}, &meta); err != nil {
		return nil, err
	}
	assets := make(map[string]Asset, len(meta.Universe))
	for i, entry := range meta.Universe {
		key := canonicalSymbol(entry.Name)
		assets[key] = Asset{
			Symbol:     entry.Name,
			ID:         i,
			Instrument: Perp,
			SzDecimals: entry.SzDecimals,
		}
	}
	c.metaMu.Lock()
	c.perpAssets = assets
	c.metaMu.Unlock()
	return assets, nil
}

// refreshSpotMeta fetches the spot universe. The asset id is the pair index
// offset by 10000; size precision comes from the pair's base token.
func (c *Client) refreshSpotMeta(ctx context.Context) (map[string]Asset, error) {
	var meta spotMeta
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "spotMeta"}, &meta); err != nil {
		return nil, err
	}
	tokensByIndex := make(map[int]spotTokenMeta, len(meta.Tokens))
	for _, token := range meta.Tokens {
		tokensByIndex[token.Index] = token
	}
	assets := make(map[string]Asset, len(meta.Universe))
	for _, pair := range meta.Universe {
		szDecimals := 0
		if base, ok := tokensByIndex[pair.Tokens[0]]; ok {
			szDecimals = base.SzDecimals
		}
		key := canonicalSymbol(pair.Name)
		assets[key] = Asset{
			Symbol:     pair.Name,
			ID:         spotAssetOffset + pair.Index,
			Instrument: Spot,
			SzDecimals: szDecimals,
		}
	}
	c.metaMu.Lock()
	c.spotAssets = assets
	c.metaMu.Unlock()
	return assets, nil
}

// refreshMids fetches all mid prices and swaps the cache whole.
func (c *Client) refreshMids(ctx context.Context) (map[string]string, error) {
	var mids map[string]string
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "allMids"}, &mids); err != nil {
		return nil, err
	}
	canonical := make(map[string]string, len(mids))
	for symbol, mid := range mids {
		canonical[canonicalSymbol(symbol)] = mid
	}
	c.midsMu.Lock()
	c.mids = canonical
	c.midsMu.Unlock()
	return canonical, nil
}

// midOrError returns the cached mid for a symbol, refreshing once on a miss.
func (c *Client) midOrError(ctx context.Context, symbol string) (string, error) {
	key := canonicalSymbol(symbol)

	c.midsMu.RLock()
	mid, ok := c.mids[key]
	c.midsMu.RUnlock()
	if ok {
		return mid, nil
	}

	mids, err := c.refreshMids(ctx)
	if err != nil {
		return "", err
	}
	if mid, ok := mids[key]; ok {
		return mid, nil
	}
	return "", newError(ErrUnknownSymbol, "no mid price for %q", symbol)
}

// AllMids returns the latest mid prices keyed by canonical symbol.
func (c *Client) AllMids(ctx context.Context) (map[string]string, error) {
	return c.refreshMids(ctx)
}

// WarmUp primes the perp universe, spot universe, and mid caches with at
// most three requests in flight. Failures are logged and swallowed; later
// lookups load lazily.
func (c *Client) WarmUp(ctx context.Context) {
	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{"perp meta", func(ctx context.Context) error { _, err := c.refreshPerpMeta(ctx); return err }},
		{"spot meta", func(ctx context.Context) error { _, err := c.refreshSpotMeta(ctx); return err }},
		{"mids", func(ctx context.Context) error { _, err := c.refreshMids(ctx); return err }},
	}

	var wg sync.WaitGroup
	for _, loader := range loaders {
		wg.Add(1)
		go func(name string, load func(context.Context) error) {
			defer wg.Done()
			if err := load(ctx); err != nil {
				logx.Infof("hyperliquid: warm-up %s failed: %v", name, err)
			}
		}(loader.name, loader.load)
	}
	wg.Wait()
}
