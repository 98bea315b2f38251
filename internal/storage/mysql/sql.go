package mysql

// ids compare byte for byte, like catalog dedup; the default collation would fold "iJhz" and "IJHZ".
const createHotelsSQL = `
CREATE TABLE IF NOT EXISTS hotels (
  position           INT          NOT NULL,
  id                 VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  run_id             CHAR(36)     NOT NULL,
  destination_id     INT          NOT NULL,
  name               TEXT         NOT NULL,
  lat                DOUBLE       NOT NULL DEFAULT 0,
  lng                DOUBLE       NOT NULL DEFAULT 0,
  address            TEXT         NOT NULL,
  city               TEXT         NOT NULL,
  country            TEXT         NOT NULL,
  description        TEXT         NOT NULL,
  amenities          JSON         NOT NULL,
  images             JSON         NOT NULL,
  booking_conditions JSON         NOT NULL,
  exported_at        TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  KEY idx_hotels_destination (destination_id),
  KEY idx_hotels_position (position)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const deleteHotelsSQL = `DELETE FROM hotels`

const insertHotelsPrefix = "INSERT INTO hotels\n  (position, id, run_id, destination_id, name, lat, lng, address, city, country, description, amenities, images, booking_conditions)\nVALUES "

// one placeholder group per row, matching storage.Columns
const insertHotelsRow = "(?,?,?,?,?,?,?,?,?,?,?,?,?,?)"

const countHotelsSQL = `SELECT COUNT(*) FROM hotels WHERE run_id = ?`
