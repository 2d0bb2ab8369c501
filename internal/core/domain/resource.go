package domain

// Resource names a cinema API collection proxied by the portal.
type Resource string

const (
	ResourceMovies     Resource = "filmes"
	ResourceCinemas    Resource = "cinemas"
	ResourceRooms      Resource = "salas"
	ResourceShowtimes  Resource = "sessoes"
	ResourceConcession Resource = "alimentos"
	ResourceLocations  Resource = "localidades"
)

// AdminResources are the collections editable from the admin screens.
var AdminResources = []Resource{
	ResourceMovies,
	ResourceCinemas,
	ResourceRooms,
	ResourceShowtimes,
	ResourceConcession,
}

// PublicResources are the collections readable without a session.
var PublicResources = []Resource{
	ResourceMovies,
	ResourceCinemas,
	ResourceShowtimes,
	ResourceConcession,
}
