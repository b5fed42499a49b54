/*
Package types defines the records exchanged with the product API.

# Records

Product:
  - Full record used by create, update and the detail screen
  - Wire fields: _id, name, description, price, quantity, status
  - Price is in the smallest currency unit

ShortProduct:
  - Projection used by the list screen (_id, name, price)
  - Label() renders "<name> - $<price>"

# Identity

ProductID is opaque. It decodes from a JSON string or from the extended
{"$oid": "..."} form some Mongo-backed servers emit, and always encodes as a
plain string. NewProductID mints an ObjectID hex for records created locally.

# Form input

ParseAmount is deliberately forgiving: non-numeric, negative or overflowing
text becomes 0 instead of an error.

# Call records

CallRecord is the unit stored by the history package for every API round trip.
*/
package types
