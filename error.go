package main

import "errors"

var (
	ErrCouldNotResolvePath    = errors.New("could not resolve path")
	ErrPathIsAFile            = errors.New("the path points to a file not a folder")
	ErrInvalidDate            = errors.New("date must be in the format YYYYMMDD")
	ErrDatabaseNotInitialised = errors.New("the database has not been initialised")
)
