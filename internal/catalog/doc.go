// Package catalog loads the card catalog from its JSON file. Records carry
// an id (string or number), the decisive string under either
// "decisive_string" or "kimariji", the lower verse as "shimo", and the
// decisiveness class as "type".
package catalog
