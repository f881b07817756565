package models

const gtvSample = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"

// SeedVideos returns a fresh copy of the static catalog.
func SeedVideos() []Video {
	return []Video{
		{
			ID:          "1",
			Title:       "Big Buck Bunny",
			Description: "A large and lovable bunny deals with three tiny bullies.",
			Category:    CategoryNature,
			Duration:    596,
			Thumbnail:   "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c5/Big_buck_bunny_poster_big.jpg/800px-Big_buck_bunny_poster_big.jpg",
			VideoURL:    gtvSample + "BigBuckBunny.mp4",
			Creator:     "Blender Foundation",
			Views:       "12M",
			UploadedAt:  "3 years ago",
		},
		{
			ID:          "2",
			Title:       "Elephant Dream",
			Description: "The world's first open movie made entirely with open-source tools.",
			Category:    CategoryTechnology,
			Duration:    653,
			Thumbnail:   "https://upload.wikimedia.org/wikipedia/commons/thumb/e/e8/Elephants_Dream_s5_both.jpg/800px-Elephants_Dream_s5_both.jpg",
			VideoURL:    gtvSample + "ElephantsDream.mp4",
			Creator:     "Blender Foundation",
			Views:       "8.5M",
			UploadedAt:  "5 years ago",
		},
		{
			ID:          "3",
			Title:       "For Bigger Blazes",
			Description: "Experience the thrill of extreme fire effects.",
			Category:    CategoryTechnology,
			Duration:    15,
			Thumbnail:   gtvSample + "images/ForBiggerBlazes.jpg",
			VideoURL:    gtvSample + "ForBiggerBlazes.mp4",
			Creator:     "Google",
			Views:       "2.1M",
			UploadedAt:  "1 year ago",
		},
		{
			ID:          "4",
			Title:       "For Bigger Escapes",
			Description: "An adventure beyond imagination awaits.",
			Category:    CategoryTravel,
			Duration:    15,
			Thumbnail:   gtvSample + "images/ForBiggerEscapes.jpg",
			VideoURL:    gtvSample + "ForBiggerEscapes.mp4",
			Creator:     "Google",
			Views:       "1.8M",
			UploadedAt:  "2 years ago",
		},
		{
			ID:          "5",
			Title:       "For Bigger Fun",
			Description: "A journey through fun and laughter.",
			Category:    CategoryMusic,
			Duration:    60,
			Thumbnail:   gtvSample + "images/ForBiggerFun.jpg",
			VideoURL:    gtvSample + "ForBiggerFun.mp4",
			Creator:     "Google",
			Views:       "3.4M",
			UploadedAt:  "1 year ago",
		},
		{
			ID:          "6",
			Title:       "For Bigger Joyrides",
			Description: "Take a ride into the world of excitement.",
			Category:    CategoryTravel,
			Duration:    15,
			Thumbnail:   gtvSample + "images/ForBiggerJoyrides.jpg",
			VideoURL:    gtvSample + "ForBiggerJoyrides.mp4",
			Creator:     "Google",
			Views:       "900K",
			UploadedAt:  "6 months ago",
		},
		{
			ID:          "7",
			Title:       "For Bigger Meltdowns",
			Description: "When things get intense, stay cool.",
			Category:    CategoryEducation,
			Duration:    15,
			Thumbnail:   gtvSample + "images/ForBiggerMeltdowns.jpg",
			VideoURL:    gtvSample + "ForBiggerMeltdowns.mp4",
			Creator:     "Google",
			Views:       "1.2M",
			UploadedAt:  "8 months ago",
		},
		{
			ID:          "8",
			Title:       "Sintel",
			Description: "A lonely young woman searches for her dragon companion.",
			Category:    CategoryNature,
			Duration:    888,
			Thumbnail:   "https://upload.wikimedia.org/wikipedia/commons/thumb/8/89/Sintel_poster.jpg/440px-Sintel_poster.jpg",
			VideoURL:    gtvSample + "Sintel.mp4",
			Creator:     "Blender Foundation",
			Views:       "15M",
			UploadedAt:  "4 years ago",
		},
		{
			ID:          "9",
			Title:       "Subaru Outback",
			Description: "On the road with the all-new Subaru Outback.",
			Category:    CategoryTravel,
			Duration:    30,
			Thumbnail:   gtvSample + "images/SubaruOutbackOnStreetAndDirt.jpg",
			VideoURL:    gtvSample + "SubaruOutbackOnStreetAndDirt.mp4",
			Creator:     "Subaru",
			Views:       "500K",
			UploadedAt:  "2 years ago",
		},
		{
			ID:          "10",
			Title:       "Tears of Steel",
			Description: "In an apocalyptic future, a group of warriors fight to save humanity.",
			Category:    CategoryTechnology,
			Duration:    734,
			Thumbnail:   "https://upload.wikimedia.org/wikipedia/commons/thumb/1/18/Tears_of_Steel_Poster.jpg/440px-Tears_of_Steel_Poster.jpg",
			VideoURL:    gtvSample + "TearsOfSteel.mp4",
			Creator:     "Blender Foundation",
			Views:       "6.7M",
			UploadedAt:  "3 years ago",
		},
		{
			ID:          "11",
			Title:       "Volkswagen GTI Review",
			Description: "A detailed look at the Volkswagen GTI performance.",
			Category:    CategoryEducation,
			Duration:    26,
			Thumbnail:   gtvSample + "images/VolkswagenGTIReview.jpg",
			VideoURL:    gtvSample + "VolkswagenGTIReview.mp4",
			Creator:     "Auto Review",
			Views:       "780K",
			UploadedAt:  "1 year ago",
		},
		{
			ID:          "12",
			Title:       "We Are Going On Bullrun",
			Description: "The ultimate road trip adventure across America.",
			Category:    CategoryMusic,
			Duration:    25,
			Thumbnail:   gtvSample + "images/WeAreGoingOnBullrun.jpg",
			VideoURL:    gtvSample + "WeAreGoingOnBullrun.mp4",
			Creator:     "Bullrun",
			Views:       "1.5M",
			UploadedAt:  "4 years ago",
		},
	}
}
