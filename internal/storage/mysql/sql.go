package mysql

const insertPropertySQL = `
INSERT INTO properties
  (homestay_name, location, sub_location, google_address, google_phone,
   google_rating, number_of_reviews, google_maps_link, photo_url, category,
   amenities, tariff, source_url, youtube_video)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Seeding path: rows are identified by (homestay_name, sub_location), so
// re-running the seeder refreshes rather than duplicates.
const upsertPropertySQL = insertPropertySQL + `
ON DUPLICATE KEY UPDATE
  location          = VALUES(location),
  google_address    = VALUES(google_address),
  google_phone      = VALUES(google_phone),
  google_rating     = VALUES(google_rating),
  number_of_reviews = VALUES(number_of_reviews),
  google_maps_link  = VALUES(google_maps_link),
  photo_url         = VALUES(photo_url),
  category          = VALUES(category),
  amenities         = VALUES(amenities),
  tariff            = VALUES(tariff),
  source_url        = VALUES(source_url),
  youtube_video     = VALUES(youtube_video),
  updated_at        = CURRENT_TIMESTAMP,
  id                = LAST_INSERT_ID(id)
`

const updatePropertySQL = `
UPDATE properties SET
  homestay_name     = ?,
  location          = ?,
  sub_location      = ?,
  google_address    = ?,
  google_phone      = ?,
  google_rating     = ?,
  number_of_reviews = ?,
  google_maps_link  = ?,
  photo_url         = ?,
  category          = ?,
  amenities         = ?,
  tariff            = ?,
  source_url        = ?,
  youtube_video     = ?
WHERE id = ?
`

const deletePropertySQL = `DELETE FROM properties WHERE id = ?`

const propertyColumns = `
  id, homestay_name, location, sub_location, google_address, google_phone,
  google_rating, number_of_reviews, google_maps_link, photo_url, category,
  amenities, tariff, source_url, youtube_video, created_at, updated_at`

const getPropertySQL = `SELECT` + propertyColumns + `
FROM properties WHERE id = ?`

// Location/sub-location counts in one pass; the repo groups rows into the
// two-level LocationStat shape.
const locationStatsSQL = `
SELECT location, sub_location, COUNT(*)
FROM properties
GROUP BY location, sub_location
`

const nameSuggestionsSQL = `
SELECT DISTINCT homestay_name
FROM properties
WHERE homestay_name LIKE CONCAT('%', ?, '%')
ORDER BY homestay_name
LIMIT ?
`

const locationSuggestionsSQL = `
SELECT DISTINCT location, sub_location
FROM properties
WHERE location LIKE CONCAT('%', ?, '%') OR sub_location LIKE CONCAT('%', ?, '%')
ORDER BY location, sub_location
LIMIT ?
`
