// Package ioutils provides file system and image helpers for splat.
//
// # Cover art discovery
//
// Vinyl rips commonly ship a scan of the sleeve next to the CUE sheet.
// FindCoverArt looks for the conventional names:
//
//	path, ok := ioutils.FindCoverArt("/rips/album")
//	// checks cover.jpg, folder.jpg, front.jpg (and .png variants)
//
// # Image processing
//
// ImageService resizes cover scans to a bounded box and converts them to
// JPEG before they are embedded as FLAC picture blocks:
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(ctx, scan, 1000, 1000)
package ioutils
