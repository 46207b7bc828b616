package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrLikeNotFound         = errors.New("like not found")
	ErrRelationshipNotFound = errors.New("relationship not found")

	ErrAlreadyLiked     = errors.New("post already liked")
	ErrAlreadyFollowing = errors.New("already following")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrEmailTaken       = errors.New("email already taken")

	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrInvalidContent     = errors.New("invalid content")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotPostAuthor      = errors.New("not the post author")
)
