// Package collection contains the cursor stub describing browsable scene collections, and the rules the viewer
// uses to pick an access model for a data source. No pagination algorithm lives here, only the document shape.
package collection
