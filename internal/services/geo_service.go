package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

const metersPerNauticalMile = 1852.0

// GeoService turns route text into stored points and map documents
type GeoService struct {
	refRepo   *repositories.ReferenceRepository
	acarsRepo *repositories.AcarsRepository
}

func NewGeoService(refRepo *repositories.ReferenceRepository, acarsRepo *repositories.AcarsRepository) *GeoService {
	return &GeoService{
		refRepo:   refRepo,
		acarsRepo: acarsRepo,
	}
}

type routeCandidate struct {
	name  string
	point orb.Point
}

// RoutePoints resolves each waypoint of route against navaids, then airports.
// When an ident is ambiguous the candidate nearest to the previous point wins.
func (s *GeoService) RoutePoints(
	ctx context.Context,
	dpt *gormModels.Airport,
	arr *gormModels.Airport,
	route string,
) ([]gormModels.Acars, error) {
	idents := routeIdents(route, dpt, arr)
	if len(idents) == 0 {
		return []gormModels.Acars{}, nil
	}

	navaids, err := s.refRepo.NavaidsByIdent(ctx, idents)
	if err != nil {
		return nil, err
	}
	airports, err := s.refRepo.AirportsByID(ctx, idents)
	if err != nil {
		return nil, err
	}

	candidates := make(map[string][]routeCandidate)
	for _, n := range navaids {
		candidates[n.Ident] = append(candidates[n.Ident], routeCandidate{
			name:  n.Ident,
			point: orb.Point{n.Longitude, n.Latitude},
		})
	}
	for _, a := range airports {
		if _, ok := candidates[a.ID]; ok {
			continue
		}
		candidates[a.ID] = []routeCandidate{{name: a.ID, point: airportPoint(&a)}}
	}

	var prev *orb.Point
	if dpt != nil {
		p := airportPoint(dpt)
		prev = &p
	}

	points := make([]gormModels.Acars, 0, len(idents))
	for _, ident := range idents {
		options := candidates[ident]
		if len(options) == 0 {
			continue
		}

		best := options[0]
		if prev != nil {
			// planar distance only ranks candidates
			bestDist := geo.Distance(*prev, best.point)
			for _, c := range options[1:] {
				if d := geo.Distance(*prev, c.point); d < bestDist {
					best, bestDist = c, d
				}
			}
		}

		points = append(points, gormModels.Acars{
			Name:      best.name,
			Latitude:  best.point.Lat(),
			Longitude: best.point.Lon(),
		})
		p := best.point
		prev = &p
	}

	return points, nil
}

// PirepGeoJSON builds the planned route documents shown on the report page
func (s *GeoService) PirepGeoJSON(ctx context.Context, pirep *gormModels.Pirep) (*dtos.MapFeatures, error) {
	route, err := s.acarsRepo.RouteForPirep(ctx, pirep.ID)
	if err != nil {
		return nil, err
	}

	points := geojson.NewFeatureCollection()
	line := orb.LineString{}

	add := func(name string, p orb.Point) {
		f := geojson.NewFeature(p)
		f.Properties["name"] = name
		points.Append(f)
		line = append(line, p)
	}

	if pirep.DptAirport != nil {
		add(pirep.DptAirport.ID, airportPoint(pirep.DptAirport))
	}
	for _, pt := range route {
		add(pt.Name, orb.Point{pt.Longitude, pt.Latitude})
	}
	if pirep.ArrAirport != nil {
		add(pirep.ArrAirport.ID, airportPoint(pirep.ArrAirport))
	}

	lines := geojson.NewFeatureCollection()
	if len(line) > 1 {
		lines.Append(geojson.NewFeature(line))
	}

	pointsJSON, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route points: %w", err)
	}
	lineJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route line: %w", err)
	}

	return &dtos.MapFeatures{
		PlannedRoutePoints: pointsJSON,
		PlannedRouteLine:   lineJSON,
	}, nil
}

// DistanceNM is the great-circle distance between two airports in nautical miles
func DistanceNM(dpt, arr *gormModels.Airport) float64 {
	if dpt == nil || arr == nil {
		return 0
	}
	return geo.DistanceHaversine(airportPoint(dpt), airportPoint(arr)) / metersPerNauticalMile
}

func airportPoint(a *gormModels.Airport) orb.Point {
	return orb.Point{a.Longitude, a.Latitude}
}

// routeIdents splits route text into waypoint idents. DCT, the endpoints and
// tokens containing '.' or '/' (procedures, speed/level groups) are dropped.
func routeIdents(route string, dpt, arr *gormModels.Airport) []string {
	skip := map[string]bool{"DCT": true}
	if dpt != nil {
		skip[dpt.ID] = true
	}
	if arr != nil {
		skip[arr.ID] = true
	}

	var idents []string
	for _, tok := range strings.Fields(strings.ToUpper(route)) {
		if skip[tok] || strings.ContainsAny(tok, "./") {
			continue
		}
		idents = append(idents, tok)
	}
	return idents
}
