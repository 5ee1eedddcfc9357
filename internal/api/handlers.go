package api

import (
	"fmt"
	"net/http"
	"errors"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dreamteam/ipinfo/binder"
	"github.com/dreamteam/ipinfo/handler"
	"github.com/dreamteam/ipinfo/internal/history"
	"github.com/dreamteam/ipinfo/pkg/logger"
)

type empty struct{}

type lookupRequest struct {
	IP string `path:"ip"`
}

// limit stays a string so that a non-numeric value falls back to the
// default instead of failing the request. Integers too large for int are
// still out of range.
type historyRequest struct {
	Limit string `query:"limit"`
}

func (a *API) home() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ empty) handler.Response {
		return handler.JSON(homeResponse{
			Success:     true,
			Application: Application,
			Version:     Version,
			Team:        Team,
			Endpoints:   endpointDocs,
		})
	}, wrapOptions[empty](a)...)
}

func (a *API) health() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ empty) handler.Response {
		return handler.JSON(healthResponse{
			Success:   true,
			Status:    "healthy",
			Service:   ServiceName,
			Version:   Version,
			Timestamp: a.timestamp(),
		})
	}, wrapOptions[empty](a)...)
}

// myIP resolves the host's own addresses and geolocates the IPv4 one.
func (a *API) myIP() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ empty) handler.Response {
		ipv4, err := a.resolver.FetchIPv4(ctx)
		if err != nil {
			return a.failure(ctx, err, http.StatusInternalServerError)
		}
		ipv6 := a.resolver.FetchIPv6(ctx)

		if err := pause(ctx, a.delay); err != nil {
			return a.failure(ctx, err, http.StatusInternalServerError)
		}

		details, err := a.geo.FetchDetails(ctx, ipv4)
		if err != nil {
			return a.failure(ctx, err, http.StatusInternalServerError)
		}

		ts := a.timestamp()
		loc := newLocation(details)
		loc.Continent = orNA(details.Continent)

		a.store.Append(newRecord(ipv4, ts, details))
		a.observe(EndpointMyIP)

		return handler.JSON(myIPResponse{
			Success:   true,
			Timestamp: ts,
			Data: myIPData{
				IPv4:     ipv4,
				IPv6:     ipv6,
				Location: loc,
				Network:  newNetwork(details),
			},
		})
	}, wrapOptions[empty](a)...)
}

func (a *API) lookup() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req lookupRequest) handler.Response {
		ip := req.IP
		if ip == "" {
			return a.failure(ctx, handler.NewValidationError("ip", "IP address is required"), http.StatusBadRequest)
		}

		details, err := a.geo.FetchDetails(ctx, ip)
		if err != nil {
			return a.failure(ctx, err, http.StatusBadRequest)
		}

		ts := a.timestamp()
		a.store.Append(newRecord(ip, ts, details))
		a.observe(EndpointLookup)

		return handler.JSON(lookupResponse{
			Success:   true,
			Timestamp: ts,
			Query:     ip,
			Data: lookupData{
				Location: newLocation(details),
				Network:  newNetwork(details),
			},
		})
	}, append(wrapOptions[lookupRequest](a),
		handler.WithBinders[lookupRequest](binder.Path(chi.URLParam)),
	)...)
}

var errInvalidLimit = handler.NewValidationError("limit", "Limit must be between 1 and 100")

func (a *API) history() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req historyRequest) handler.Response {
		limit := history.DefaultLimit
		n, err := strconv.Atoi(req.Limit)
		switch {
		case err == nil:
			limit = n
		case errors.Is(err, strconv.ErrRange):
			return a.failure(ctx, errInvalidLimit, http.StatusBadRequest)
		}

		records, total, err := a.store.Snapshot(limit)
		if err != nil {
			return a.failure(ctx, errInvalidLimit, http.StatusBadRequest)
		}

		return handler.JSON(historyResponse{
			Success:   true,
			Timestamp: a.timestamp(),
			Count:     total,
			Limit:     limit,
			History:   records,
		})
	}, append(wrapOptions[historyRequest](a),
		handler.WithBinders[historyRequest](binder.Query()),
	)...)
}

func (a *API) clearHistory() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ empty) handler.Response {
		n := a.store.Clear()
		a.log.InfoContext(ctx, "history cleared", logger.Event("history_cleared"), logger.Count(n))

		return handler.JSON(clearResponse{
			Success:   true,
			Timestamp: a.timestamp(),
			Message:   fmt.Sprintf("Cleared %d history entries", n),
			Cleared:   n,
		})
	}, wrapOptions[empty](a)...)
}

func (a *API) stats() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ empty) handler.Response {
		return handler.JSON(statsResponse{
			Success:    true,
			Timestamp:  a.timestamp(),
			Statistics: a.store.Stats(),
		})
	}, wrapOptions[empty](a)...)
}

func wrapOptions[R any](a *API) []handler.WrapOption[R] {
	return []handler.WrapOption[R]{handler.WithErrorHandler[R](handler.NewErrorHandler(a.log))}
}
