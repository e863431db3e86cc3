package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/pm1-tools/pm1/plgn"
	"github.com/pm1-tools/pm1/pm1"
	"github.com/pm1-tools/pm1/util"
)

const (
	maxRequestBody = 64 << 10
	factorTimeout  = 30 * time.Second
)

type factorResponse struct {
	Number     *big.Int   `json:"number"`
	Factors    []*big.Int `json:"factors"`
	Cofactor   *big.Int   `json:"cofactor"`
	State      pm1.State  `json:"state"`
	Steps      int        `json:"steps"`
	Complete   bool       `json:"complete"`
	Error      string     `json:"error,omitempty"`
	DurationMs int64      `json:"duration_ms"`
}

func newFactorResponse(res *pm1.Result, duration time.Duration) factorResponse {
	resp := factorResponse{
		Number:     res.Number,
		Factors:    append([]*big.Int{}, res.Factors...),
		Cofactor:   res.Cofactor,
		State:      res.State,
		Steps:      res.Steps,
		Complete:   res.Complete(),
		DurationMs: duration.Milliseconds(),
	}
	if err := res.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

type factorOutcome struct {
	res      *pm1.Result
	duration time.Duration
}

type factorHandler struct {
	conf    pm1.Config
	timeout time.Duration
	group   singleflight.Group
}

func newFactorHandler(conf pm1.Config) *factorHandler {
	if conf.MaxBound <= 0 {
		conf.MaxBound = pm1.DefaultServeMaxBound
	}
	return &factorHandler{conf: conf, timeout: factorTimeout}
}

// searchConfig returns the handler's config with a plugin that stops the
// search once ctx is done.
func (h *factorHandler) searchConfig(ctx context.Context) pm1.Config {
	conf := h.conf
	conf.Plugins = append(append([]pm1.Plugin(nil), h.conf.Plugins...), plgn.NewContextPlugin(ctx))
	return conf
}

// parseFactorRequest extracts "number" from a JSON body. JSON numbers are
// taken from their raw text so large integers keep every digit.
func parseFactorRequest(body []byte) (*big.Int, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid request payload", pm1.ErrInvalidInput)
	}
	v := gjson.GetBytes(body, "number")
	switch v.Type {
	case gjson.Number:
		return util.ParsePositive(v.Raw)
	case gjson.String:
		return util.ParsePositive(v.Str)
	default:
		return nil, fmt.Errorf("%w: missing number", pm1.ErrInvalidInput)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pm1.ErrInvalidInput) || errors.Is(err, pm1.ErrBoundTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// run factors n, sharing the work between identical concurrent requests. The
// search runs under the first caller's ctx and the handler timeout; later
// callers stop waiting when their own ctx is done.
func (h *factorHandler) run(ctx context.Context, n *big.Int) (*factorOutcome, bool, error) {
	ch := h.group.DoChan(n.String(), func() (interface{}, error) {
		searchCtx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()

		start := time.Now()
		res, err := pm1.FindFactors(n, h.searchConfig(searchCtx))
		if err != nil {
			return nil, err
		}
		return &factorOutcome{res: res, duration: time.Since(start)}, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Shared, r.Err
		}
		return r.Val.(*factorOutcome), r.Shared, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (h *factorHandler) factor(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	n, err := parseFactorRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, shared, err := h.run(c.Request.Context(), n)
	if err != nil {
		log.Printf("[deploy] factor failed number=%s error=%v", n, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	log.Printf("[deploy] factor completed number=%s state=%s steps=%d shared=%t duration=%s",
		n, out.res.State, out.res.Steps, shared, out.duration)
	c.JSON(http.StatusOK, newFactorResponse(out.res, out.duration))
}
