package api

// mapdata.go - map page and per-province aggregate payload

import (
	_ "embed"
	"net/http"
	"sort"

	"github.com/carmsdata/carmsdw/pkg/core"
)

//go:embed static/map.html
var mapHTML []byte

// provinceCentroid is a rough display centroid, demo-appropriate.
type provinceCentroid struct {
	Lat  float64
	Lon  float64
	Name string
}

var provinceCentroids = map[string]provinceCentroid{
	"BC": {53.7267, -127.6476, "British Columbia"},
	"AB": {53.9333, -116.5765, "Alberta"},
	"SK": {52.9399, -106.4509, "Saskatchewan"},
	"MB": {53.7609, -98.8139, "Manitoba"},
	"ON": {51.2538, -85.3232, "Ontario"},
	"QC": {52.9399, -73.5491, "Quebec"},
	"NB": {46.5653, -66.4619, "New Brunswick"},
	"NS": {44.6820, -63.7443, "Nova Scotia"},
	"PE": {46.5107, -63.4168, "Prince Edward Island"},
	"NL": {53.1355, -57.6604, "Newfoundland and Labrador"},
	"YT": {64.2823, -135.0000, "Yukon"},
	"NT": {64.8255, -124.8457, "Northwest Territories"},
	"NU": {70.2998, -83.1076, "Nunavut"},
}

// MapPoint is one province marker on the map.
type MapPoint struct {
	Province string  `json:"province"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Programs int64   `json:"programs"`
}

func (s *Server) handleMapPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(mapHTML)
}

func (s *Server) handleMapData(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.ProvinceCounts(r.Context())
	if err != nil {
		s.logger.Error("failed to load map data", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	points := make([]MapPoint, 0, len(counts))
	for _, c := range counts {
		if c.Province == "" || c.Province == core.UnknownProvince {
			continue
		}
		meta, ok := provinceCentroids[c.Province]
		if !ok {
			continue
		}
		points = append(points, MapPoint{
			Province: c.Province,
			Name:     meta.Name,
			Lat:      meta.Lat,
			Lon:      meta.Lon,
			Programs: c.Programs,
		})
	}

	// Largest first; stable ordering for ties.
	sort.Slice(points, func(i, j int) bool {
		if points[i].Programs != points[j].Programs {
			return points[i].Programs > points[j].Programs
		}
		return points[i].Province < points[j].Province
	})

	writeJSON(w, http.StatusOK, points)
}
