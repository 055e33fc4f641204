/*
DESCRIPTION
  errors.go holds the errors shared by the gocv capture and its stand-in.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package capture provides frame capture from cameras and video files using
// Open CV. Builds without the withcv tag get a stand-in that cannot open
// anything.
package capture

import "errors"

var (
	ErrNoFrame     = errors.New("no frame available")
	ErrUnavailable = errors.New("built without Open CV support")
)
