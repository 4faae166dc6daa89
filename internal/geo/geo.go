// Package geo implements great-circle distance on a spherical Earth and the
// coordinate bounding box used to prefilter proximity searches.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by every distance computation.
const EarthRadiusKm = 6371.0

// ValidLatitude reports whether lat is within [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is within [-180, 180].
func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DistanceKm returns the spherical law of cosines distance between two
// points given in decimal degrees. The acos argument is clamped to [-1, 1]
// so identical points give 0 instead of NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lon2 - lon1)

	cosine := math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda) + math.Sin(phi1)*math.Sin(phi2)
	cosine = math.Max(-1, math.Min(1, cosine))

	return EarthRadiusKm * math.Acos(cosine)
}

// Box is a latitude/longitude rectangle in decimal degrees.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether the point lies inside b, edges included.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// BoundingBox returns a rectangle holding every point within radiusKm of
// (lat, lon). ok is false when the circle touches a pole or crosses the
// antimeridian; a single rectangle cannot describe it then and callers scan
// every place instead.
func BoundingBox(lat, lon, radiusKm float64) (box Box, ok bool) {
	angular := radiusKm / EarthRadiusKm
	if angular >= math.Pi {
		return Box{}, false
	}

	phi := radians(lat)
	minPhi := phi - angular
	maxPhi := phi + angular
	if minPhi <= -math.Pi/2 || maxPhi >= math.Pi/2 {
		return Box{}, false
	}

	dLambda := math.Asin(math.Sin(angular) / math.Cos(phi))
	lambda := radians(lon)
	minLambda := lambda - dLambda
	maxLambda := lambda + dLambda
	if minLambda < -math.Pi || maxLambda > math.Pi {
		return Box{}, false
	}

	return Box{
		MinLat: degrees(minPhi),
		MaxLat: degrees(maxPhi),
		MinLon: degrees(minLambda),
		MaxLon: degrees(maxLambda),
	}, true
}
