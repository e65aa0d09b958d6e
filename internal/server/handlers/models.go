package handlers

import "github.com/yesaroun/taskboard/internal/store"

// registerRequest is the body of POST /users/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// loginRequest is the body of POST /users/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued access token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        any    `json:"user"`
}

// updateProfileRequest is the body of PATCH /users/{id}/profile.
type updateProfileRequest struct {
	Nickname string `json:"nickname"`
}

// updatePasswordRequest is the body of PATCH /users/{id}/password.
type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// createPostRequest is the body of POST /posts. ImageIDs references
// previously uploaded images to attach.
type createPostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageIDs []int64 `json:"image_ids"`
}

// updatePostRequest is the body of PATCH and PUT /posts/{id}.
type updatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// commentRequest is the body of POST and PATCH on comments.
type commentRequest struct {
	Content string `json:"content"`
}

// postListResponse is the cursor-paginated post listing.
type postListResponse struct {
	Posts      []store.Post `json:"posts"`
	NextCursor int64        `json:"next_cursor"`
}

// postDetailResponse is a post with its comments and attached images.
type postDetailResponse struct {
	Post     *store.Post     `json:"post"`
	Comments []store.Comment `json:"comments"`
	Images   []store.Image   `json:"images"`
}
