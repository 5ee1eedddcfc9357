package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// geoFields is the ip-api.com field list requested for every lookup.
const geoFields = "status,message,continent,continentCode,country,countryCode,region,regionName,city,zip,lat,lon,timezone,isp,org,as,asname,query"

const statusSuccess = "success"

// GeoDetails is the ip-api.com answer for one address.
type GeoDetails struct {
	Status        string  `json:"status"`
	Message       string  `json:"message,omitempty"`
	Continent     string  `json:"continent"`
	ContinentCode string  `json:"continentCode"`
	Country       string  `json:"country"`
	CountryCode   string  `json:"countryCode"`
	Region        string  `json:"region"`
	RegionName    string  `json:"regionName"`
	City          string  `json:"city"`
	Zip           string  `json:"zip"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Timezone      string  `json:"timezone"`
	ISP           string  `json:"isp"`
	Org           string  `json:"org"`
	AS            string  `json:"as"`
	ASName        string  `json:"asname"`
	Query         string  `json:"query"`
}

// FetchDetails looks up ip on ip-api.com.
func (c *Client) FetchDetails(ctx context.Context, ip string) (GeoDetails, error) {
	start := time.Now()
	d, err := c.fetchDetails(ctx, ip)
	c.observe(ServiceGeo, err, time.Since(start))
	return d, err
}

func (c *Client) fetchDetails(ctx context.Context, ip string) (GeoDetails, error) {
	status, body, err := c.get(ctx, ServiceGeo, c.detailsURL(ip))
	if err != nil {
		switch kind := transportKind(err); kind {
		case KindTimeout:
			return GeoDetails{}, &Error{Service: ServiceGeo, Kind: kind, Msg: "Request timeout", Err: err}
		case KindConnection:
			return GeoDetails{}, &Error{Service: ServiceGeo, Kind: kind, Msg: "Connection failed", Err: err}
		default:
			return GeoDetails{}, &Error{Service: ServiceGeo, Kind: kind, Msg: "Error: " + err.Error(), Err: err}
		}
	}

	switch status {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return GeoDetails{}, &Error{Service: ServiceGeo, Kind: KindRateLimited, Msg: "API rate limit reached"}
	default:
		return GeoDetails{}, &Error{Service: ServiceGeo, Kind: KindStatus, Msg: fmt.Sprintf("HTTP error: %d", status)}
	}

	var d GeoDetails
	if err := json.Unmarshal(body, &d); err != nil {
		return GeoDetails{}, &Error{Service: ServiceGeo, Kind: KindDecode, Msg: "Error: " + err.Error(), Err: err}
	}
	if d.Status != statusSuccess {
		msg := d.Message
		if msg == "" {
			msg = "Unknown API error"
		}
		return GeoDetails{}, &Error{Service: ServiceGeo, Kind: KindAPI, Msg: msg}
	}
	return d, nil
}

func (c *Client) detailsURL(ip string) string {
	return strings.TrimSuffix(c.geoURL, "/") + "/" + url.PathEscape(ip) + "?fields=" + geoFields
}
