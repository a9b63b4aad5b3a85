// Package songlist reads "title - artist" song lists.
//
// [Parse] and [ParseFile] produce lowercased [models.SongQuery] values for library scans.
// [ReadEntries] produces case-preserving canonical entries for list comparison and falls back
// to GBK when a file is not valid UTF-8.
package songlist
