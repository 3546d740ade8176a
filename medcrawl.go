// Package medcrawl retrieves medical articles from public health websites,
// extracts their body text, classifies each fetched page as an article or a
// link index, and exports the results as tabular files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, excelize/, yaml/).
package medcrawl
