package overpass

import "github.com/wayfarer-travel/service-travel/internal/domain/activity"

// categorySelectors maps a requested category to Overpass tag filters.
var categorySelectors = map[activity.PertinentCategory][]string{
	activity.CategoryMonument:           {`["historic"~"monument|memorial"]`},
	activity.CategoryMuseum:             {`["tourism"="museum"]`},
	activity.CategoryPark:               {`["leisure"~"park|garden"]`},
	activity.CategoryTouristAttraction:  {`["tourism"="attraction"]`},
	activity.CategoryAmusementPark:      {`["tourism"="theme_park"]`},
	activity.CategoryThemePark:          {`["tourism"="theme_park"]`},
	activity.CategoryChurch:             {`["amenity"="place_of_worship"]["religion"="christian"]`, `["building"~"church|cathedral|chapel"]`},
	activity.CategoryCemetery:           {`["landuse"="cemetery"]`, `["amenity"="grave_yard"]`},
	activity.CategoryPlaceOfWorship:     {`["amenity"="place_of_worship"]`},
	activity.CategoryArtGallery:         {`["tourism"="gallery"]`},
	activity.CategoryGallery:            {`["tourism"="gallery"]`},
	activity.CategoryZoo:                {`["tourism"="zoo"]`},
	activity.CategoryAquarium:           {`["tourism"="aquarium"]`},
	activity.CategoryStadium:            {`["leisure"="stadium"]`},
	activity.CategoryLibrary:            {`["amenity"="library"]`},
	activity.CategoryMovieTheater:       {`["amenity"="cinema"]`},
	activity.CategoryNightClub:          {`["amenity"="nightclub"]`},
	activity.CategoryCasino:             {`["amenity"="casino"]`},
	activity.CategoryBowlingAlley:       {`["leisure"="bowling_alley"]`},
	activity.CategorySpa:                {`["leisure"~"spa|sauna"]`, `["amenity"="spa"]`},
	activity.CategoryRestaurant:         {`["amenity"="restaurant"]`},
	activity.CategoryCafe:               {`["amenity"="cafe"]`},
	activity.CategoryBar:                {`["amenity"~"bar|pub"]`},
	activity.CategoryCampground:         {`["tourism"="camp_site"]`},
	activity.CategoryNaturalFeature:     {`["natural"~"peak|beach|water|cliff|cave_entrance|waterfall"]`},
	activity.CategoryScenicLookout:      {`["tourism"="viewpoint"]`},
	activity.CategoryHikingArea:         {`["route"="hiking"]`, `["leisure"="nature_reserve"]`},
	activity.CategoryBeach:              {`["natural"="beach"]`},
	activity.CategoryLake:               {`["water"="lake"]`},
	activity.CategoryMountain:           {`["natural"="peak"]`},
	activity.CategoryWaterPark:          {`["leisure"="water_park"]`},
	activity.CategoryHistoricalLandmark: {`["historic"]`},
}

// fallbackSelectors are used for categories without a specific filter.
var fallbackSelectors = []string{`["tourism"]`, `["historic"]`}

func selectorsFor(c activity.PertinentCategory) []string {
	if sels, ok := categorySelectors[c]; ok {
		return sels
	}
	return fallbackSelectors
}

// tagRule maps one OSM key/value pair to place categories. An empty value matches any value.
type tagRule struct {
	key, value string
	categories []activity.PertinentCategory
}

// tagRules are ordered most specific first; the first category becomes the place's primary category.
var tagRules = []tagRule{
	{"tourism", "museum", []activity.PertinentCategory{activity.CategoryMuseum}},
	{"historic", "monument", []activity.PertinentCategory{activity.CategoryMonument, activity.CategoryHistoricalLandmark}},
	{"historic", "memorial", []activity.PertinentCategory{activity.CategoryMonument, activity.CategoryHistoricalLandmark}},
	{"tourism", "attraction", []activity.PertinentCategory{activity.CategoryTouristAttraction}},
	{"tourism", "gallery", []activity.PertinentCategory{activity.CategoryArtGallery, activity.CategoryGallery}},
	{"tourism", "zoo", []activity.PertinentCategory{activity.CategoryZoo}},
	{"tourism", "aquarium", []activity.PertinentCategory{activity.CategoryAquarium}},
	{"tourism", "theme_park", []activity.PertinentCategory{activity.CategoryThemePark, activity.CategoryAmusementPark}},
	{"tourism", "viewpoint", []activity.PertinentCategory{activity.CategoryScenicLookout}},
	{"tourism", "camp_site", []activity.PertinentCategory{activity.CategoryCampground}},
	{"leisure", "park", []activity.PertinentCategory{activity.CategoryPark}},
	{"leisure", "garden", []activity.PertinentCategory{activity.CategoryPark}},
	{"leisure", "water_park", []activity.PertinentCategory{activity.CategoryWaterPark}},
	{"leisure", "stadium", []activity.PertinentCategory{activity.CategoryStadium}},
	{"leisure", "bowling_alley", []activity.PertinentCategory{activity.CategoryBowlingAlley}},
	{"leisure", "nature_reserve", []activity.PertinentCategory{activity.CategoryHikingArea, activity.CategoryNaturalFeature}},
	{"leisure", "spa", []activity.PertinentCategory{activity.CategorySpa}},
	{"leisure", "sauna", []activity.PertinentCategory{activity.CategorySpa}},
	{"amenity", "spa", []activity.PertinentCategory{activity.CategorySpa}},
	{"amenity", "place_of_worship", []activity.PertinentCategory{activity.CategoryPlaceOfWorship}},
	{"amenity", "grave_yard", []activity.PertinentCategory{activity.CategoryCemetery}},
	{"landuse", "cemetery", []activity.PertinentCategory{activity.CategoryCemetery}},
	{"amenity", "library", []activity.PertinentCategory{activity.CategoryLibrary}},
	{"amenity", "cinema", []activity.PertinentCategory{activity.CategoryMovieTheater}},
	{"amenity", "nightclub", []activity.PertinentCategory{activity.CategoryNightClub}},
	{"amenity", "casino", []activity.PertinentCategory{activity.CategoryCasino}},
	{"amenity", "restaurant", []activity.PertinentCategory{activity.CategoryRestaurant}},
	{"amenity", "cafe", []activity.PertinentCategory{activity.CategoryCafe}},
	{"amenity", "bar", []activity.PertinentCategory{activity.CategoryBar}},
	{"amenity", "pub", []activity.PertinentCategory{activity.CategoryBar}},
	{"natural", "beach", []activity.PertinentCategory{activity.CategoryBeach, activity.CategoryNaturalFeature}},
	{"natural", "peak", []activity.PertinentCategory{activity.CategoryMountain, activity.CategoryNaturalFeature}},
	{"water", "lake", []activity.PertinentCategory{activity.CategoryLake, activity.CategoryNaturalFeature}},
	{"route", "hiking", []activity.PertinentCategory{activity.CategoryHikingArea}},
	{"natural", "", []activity.PertinentCategory{activity.CategoryNaturalFeature}},
	{"historic", "", []activity.PertinentCategory{activity.CategoryHistoricalLandmark}},
	{"tourism", "", []activity.PertinentCategory{activity.CategoryPointOfInterest}},
}

// categoriesFor derives pertinent categories from OSM tags, without duplicates.
func categoriesFor(tags map[string]string) []string {
	seen := make(map[activity.PertinentCategory]struct{})
	var out []string

	add := func(c activity.PertinentCategory) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c.String())
	}

	for _, rule := range tagRules {
		v, ok := tags[rule.key]
		if !ok || (rule.value != "" && v != rule.value) {
			continue
		}
		for _, c := range rule.categories {
			add(c)
		}
	}
	if tags["amenity"] == "place_of_worship" && tags["religion"] == "christian" {
		add(activity.CategoryChurch)
	}
	return out
}
