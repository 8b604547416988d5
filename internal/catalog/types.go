package catalog

// Movie is a single catalog entry as returned by list endpoints.
type Movie struct {
	ID           int64   `json:"id" example:"550"`
	Title        string  `json:"title" example:"Fight Club"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path" example:"/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date" example:"1999-10-15"`
	MediaType    string  `json:"media_type,omitempty" example:"movie"`
	GenreIDs     []int64 `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average" example:"8.4"`
	VoteCount    int64   `json:"vote_count"`
}

// MoviePage is one page of a paginated list response.
type MoviePage struct {
	Page         int     `json:"page" example:"1"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int64   `json:"total_results"`
}

type Genre struct {
	ID   int64  `json:"id" example:"18"`
	Name string `json:"name" example:"Drama"`
}

type genreList struct {
	Genres []Genre `json:"genres"`
}

// MovieDetail is the full record returned by the single-movie endpoint.
type MovieDetail struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Tagline      string  `json:"tagline"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	Status       string  `json:"status" example:"Released"`
	Homepage     string  `json:"homepage"`
	Genres       []Genre `json:"genres"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
}
