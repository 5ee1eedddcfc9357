package api

import (
	"github.com/dreamteam/ipinfo/internal/history"
	"github.com/dreamteam/ipinfo/internal/upstream"
)

// notAvailable replaces empty upstream fields in responses.
const notAvailable = "N/A"

type homeResponse struct {
	Success     bool              `json:"success"`
	Application string            `json:"application"`
	Version     string            `json:"version"`
	Team        string            `json:"team"`
	Endpoints   map[string]string `json:"endpoints"`
}

var endpointDocs = map[string]string{
	"GET /":                "API documentation",
	"GET /api/myip":        "Get your IP information",
	"GET /api/lookup/<ip>": "Lookup specific IP address",
	"GET /api/history":     "Get lookup history",
	"DELETE /api/history":  "Clear lookup history",
	"GET /api/stats":       "Get API statistics",
	"GET /health":          "Health check",
	"GET /metrics":         "Prometheus metrics",
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type location struct {
	City        string      `json:"city"`
	Region      string      `json:"region"`
	Country     string      `json:"country"`
	CountryCode string      `json:"country_code"`
	Continent   string      `json:"continent,omitempty"`
	PostalCode  string      `json:"postal_code"`
	Coordinates coordinates `json:"coordinates"`
	Timezone    string      `json:"timezone"`
}

type network struct {
	ISP          string `json:"isp"`
	Organization string `json:"organization"`
	AS           string `json:"as"`
	ASNName      string `json:"asn_name"`
}

type myIPData struct {
	IPv4     string              `json:"ipv4"`
	IPv6     upstream.IPv6Result `json:"ipv6"`
	Location location            `json:"location"`
	Network  network             `json:"network"`
}

type myIPResponse struct {
	Success   bool     `json:"success"`
	Timestamp string   `json:"timestamp"`
	Data      myIPData `json:"data"`
}

type lookupData struct {
	Location location `json:"location"`
	Network  network  `json:"network"`
}

type lookupResponse struct {
	Success   bool       `json:"success"`
	Timestamp string     `json:"timestamp"`
	Query     string     `json:"query"`
	Data      lookupData `json:"data"`
}

type historyResponse struct {
	Success   bool             `json:"success"`
	Timestamp string           `json:"timestamp"`
	Count     int              `json:"count"`
	Limit     int              `json:"limit"`
	History   []history.Record `json:"history"`
}

type clearResponse struct {
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Cleared   int    `json:"cleared"`
}

type statsResponse struct {
	Success    bool          `json:"success"`
	Timestamp  string        `json:"timestamp"`
	Statistics history.Stats `json:"statistics"`
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func newLocation(d upstream.GeoDetails) location {
	return location{
		City:        orNA(d.City),
		Region:      orNA(d.RegionName),
		Country:     orNA(d.Country),
		CountryCode: orNA(d.CountryCode),
		PostalCode:  orNA(d.Zip),
		Coordinates: coordinates{Latitude: d.Lat, Longitude: d.Lon},
		Timezone:    orNA(d.Timezone),
	}
}

func newNetwork(d upstream.GeoDetails) network {
	return network{
		ISP:          orNA(d.ISP),
		Organization: orNA(d.Org),
		AS:           orNA(d.AS),
		ASNName:      orNA(d.ASName),
	}
}

func newRecord(ip, ts string, d upstream.GeoDetails) history.Record {
	return history.Record{
		IP:        ip,
		Timestamp: ts,
		City:      orNA(d.City),
		Country:   orNA(d.Country),
	}
}
