// Package cancerdx is a Go client for the cancerdx classification service.
//
//	c, _ := cancerdx.New("http://localhost:5000", cancerdx.WithTimeout(5*time.Second))
//	res, err := c.Predict(ctx, map[string]any{"radius_mean": 17.99, ...})
//	patients, _ := c.ListRecords(ctx)
//	rec, _ := c.GetRecord(ctx, res.ID)
//
// Non-2xx responses are returned as *APIError. Use errors.Is with
// ErrRecordNotFound, ErrStoreNotConfigured or ErrInvalidRequest to branch on them.
package cancerdx
