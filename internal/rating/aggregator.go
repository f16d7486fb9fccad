// Package rating computes overall and per-user average ratings from review
// data. Aggregates are derived on every call and never stored, so a read
// always reflects the latest writes.
package rating

import "math"

// Entry is one review's contribution to the aggregates.
type Entry struct {
	MovieID int64
	UserID  string
	Points  float64
}

// Aggregate holds the derived averages for one movie. UserAverage is scoped
// to the requesting user and stays 0 when that user has no reviews for the
// movie or the request is unauthenticated.
type Aggregate struct {
	MovieID        int64   `json:"movie_id"`
	OverallAverage float64 `json:"overall_average_rating"`
	UserAverage    float64 `json:"user_average_rating"`
}

// Round2 rounds to 2 decimal places, half away from zero. This matches
// Postgres ROUND(numeric, 2) so the in-memory and store-side aggregation
// paths agree.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ByMovie groups all entries by movie in one pass and produces an aggregate
// per distinct movie. Pass an empty userID for unauthenticated requests; the
// user average is then 0 for every movie.
func ByMovie(entries []Entry, userID string) map[int64]Aggregate {
	type sums struct {
		overallTotal float64
		overallCount int
		userTotal    float64
		userCount    int
	}

	groups := make(map[int64]*sums)
	for _, e := range entries {
		g, ok := groups[e.MovieID]
		if !ok {
			g = &sums{}
			groups[e.MovieID] = g
		}
		g.overallTotal += e.Points
		g.overallCount++
		if userID != "" && e.UserID == userID {
			g.userTotal += e.Points
			g.userCount++
		}
	}

	aggregates := make(map[int64]Aggregate, len(groups))
	for movieID, g := range groups {
		agg := Aggregate{MovieID: movieID}
		if g.overallCount > 0 {
			agg.OverallAverage = Round2(g.overallTotal / float64(g.overallCount))
		}
		if g.userCount > 0 {
			agg.UserAverage = Round2(g.userTotal / float64(g.userCount))
		}
		aggregates[movieID] = agg
	}
	return aggregates
}

// ForMovie computes the aggregate for a single movie. A movie with no
// entries yields zero averages, not an error.
func ForMovie(entries []Entry, movieID int64, userID string) Aggregate {
	relevant := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.MovieID == movieID {
			relevant = append(relevant, e)
		}
	}
	if agg, ok := ByMovie(relevant, userID)[movieID]; ok {
		return agg
	}
	return Aggregate{MovieID: movieID}
}
