package activity

import "fmt"

// PertinentCategory is a place-type tag considered worth surfacing to travellers.
type PertinentCategory string

const (
	CategoryMonument           PertinentCategory = "monument"
	CategoryMuseum             PertinentCategory = "museum"
	CategoryPark               PertinentCategory = "park"
	CategoryTouristAttraction  PertinentCategory = "tourist_attraction"
	CategoryAmusementPark      PertinentCategory = "amusement_park"
	CategoryChurch             PertinentCategory = "church"
	CategoryCemetery           PertinentCategory = "cemetery"
	CategoryPlaceOfWorship     PertinentCategory = "place_of_worship"
	CategoryArtGallery         PertinentCategory = "art_gallery"
	CategoryZoo                PertinentCategory = "zoo"
	CategoryAquarium           PertinentCategory = "aquarium"
	CategoryStadium            PertinentCategory = "stadium"
	CategoryLibrary            PertinentCategory = "library"
	CategoryMovieTheater       PertinentCategory = "movie_theater"
	CategoryNightClub          PertinentCategory = "night_club"
	CategoryCasino             PertinentCategory = "casino"
	CategoryBowlingAlley       PertinentCategory = "bowling_alley"
	CategorySpa                PertinentCategory = "spa"
	CategoryRestaurant         PertinentCategory = "restaurant"
	CategoryCafe               PertinentCategory = "cafe"
	CategoryBar                PertinentCategory = "bar"
	CategoryCampground         PertinentCategory = "campground"
	CategoryPointOfInterest    PertinentCategory = "point_of_interest"
	CategoryNaturalFeature     PertinentCategory = "natural_feature"
	CategoryScenicLookout      PertinentCategory = "scenic_lookout"
	CategoryHikingArea         PertinentCategory = "hiking_area"
	CategoryBeach              PertinentCategory = "beach"
	CategoryLake               PertinentCategory = "lake"
	CategoryMountain           PertinentCategory = "mountain"
	CategoryWaterPark          PertinentCategory = "water_park"
	CategoryThemePark          PertinentCategory = "theme_park"
	CategoryGallery            PertinentCategory = "gallery"
	CategoryHistoricalLandmark PertinentCategory = "historical_landmark"
)

var pertinentUniverse = map[PertinentCategory]struct{}{
	CategoryMonument: {}, CategoryMuseum: {}, CategoryPark: {}, CategoryTouristAttraction: {},
	CategoryAmusementPark: {}, CategoryChurch: {}, CategoryCemetery: {}, CategoryPlaceOfWorship: {},
	CategoryArtGallery: {}, CategoryZoo: {}, CategoryAquarium: {}, CategoryStadium: {},
	CategoryLibrary: {}, CategoryMovieTheater: {}, CategoryNightClub: {}, CategoryCasino: {},
	CategoryBowlingAlley: {}, CategorySpa: {}, CategoryRestaurant: {}, CategoryCafe: {},
	CategoryBar: {}, CategoryCampground: {}, CategoryPointOfInterest: {}, CategoryNaturalFeature: {},
	CategoryScenicLookout: {}, CategoryHikingArea: {}, CategoryBeach: {}, CategoryLake: {},
	CategoryMountain: {}, CategoryWaterPark: {}, CategoryThemePark: {}, CategoryGallery: {},
	CategoryHistoricalLandmark: {},
}

// IsValid returns true if the category belongs to the pertinent universe.
func (c PertinentCategory) IsValid() bool {
	_, ok := pertinentUniverse[c]
	return ok
}

// String returns the string representation of the category.
func (c PertinentCategory) String() string {
	return string(c)
}

// ParseCategory converts a string to a PertinentCategory, returning an error if invalid.
func ParseCategory(s string) (PertinentCategory, error) {
	c := PertinentCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", s)
	}
	return c, nil
}

// Categories returns the pertinent universe. Order is unspecified.
func Categories() []PertinentCategory {
	out := make([]PertinentCategory, 0, len(pertinentUniverse))
	for c := range pertinentUniverse {
		out = append(out, c)
	}
	return out
}

// IsPertinent reports whether any of the given tags is in the pertinent universe.
func IsPertinent(tags []string) bool {
	for _, t := range tags {
		if PertinentCategory(t).IsValid() {
			return true
		}
	}
	return false
}
