package app

import "errors"

var ErrAWSConfig = errors.New("failed to load aws config")
