package response

const (
	ServerError = "Server error, try again later"
	//----------------------
	DbConnectionFailed = "DB connection failed"
	DbInsertFailed     = "DB insert failed"
	DbUpdateFailed     = "execute failed"
	DbDeleteFailed     = "delete failed"
	DbQueryFailed      = "prepare failed"
	//----------------------
	MovieNotFound = "Movie not found"
	//----------------------
	BadRequestBody      = "Incorrect request body"
	TitleRequired       = "title required"
	IdRequired          = "id required"
	NoFieldsToUpdate    = "no fields to update"
	PosterTooLarge      = "poster too large"
	UnsupportedImage    = "unsupported image type"
	PosterSaveFailed    = "failed to save poster"
	ReviewFieldsMissing = "movieId and rating required"
	InvalidRating       = "rating must be between 1 and 5"
	ReviewWriteFailed   = "Could not write reviews file"
	UsernameRequired    = "username required"
	PasswordRequired    = "password required for create/update"
	InvalidAction       = "action must be one of upsert, insert, delete"
	HashFailed          = "Could not hash password"
	UserInsertFailed    = "Could not insert user"
	//----------------------
)
