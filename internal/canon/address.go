package canon

import (
    "fmt"
    "math"
    "regexp"
    "strings"
)

var rePunct = regexp.MustCompile(`[^A-Za-z0-9\s]`)

// FreeText normalizes a typed address so that trivially different spellings
// ("123 Oak Street, Portland" / "123  oak st portland") share one cache key.
// Unit designators are kept because they can resolve to a different place id.
func FreeText(s string) string {
    n := strings.ToUpper(strings.TrimSpace(s))
    n = rePunct.ReplaceAllString(n, " ")
    n = collapseSpaces(n)
    n = abbreviateSuffix(" " + n + " ")
    return strings.ToLower(collapseSpaces(n))
}

// Canonicalize normalizes a structured address and computes a stable property key.
// It intentionally ignores unit/suite to stabilize identity per parcel.
func Canonicalize(line1, city, state, zip string) (normLine1, normCity, normState, normZip, propertyKey string) {
    n1 := strings.TrimSpace(strings.ToUpper(line1))
    n1 = stripUnit(n1)
    n1 = rePunct.ReplaceAllString(n1, " ")
    n1 = collapseSpaces(abbreviateSuffix(" " + collapseSpaces(n1) + " "))

    c := City(city)
    st := State(state)
    z := PostalCode(zip)

    key := strings.ToLower(n1 + "|" + c + "|" + st + "|" + z)
    return n1, c, st, z, key
}

func City(city string) string {
    return collapseSpaces(rePunct.ReplaceAllString(strings.ToUpper(strings.TrimSpace(city)), " "))
}

func State(state string) string {
    st := strings.ToUpper(strings.TrimSpace(state))
    if len(st) > 2 { st = stateAbbrev(st) }
    return st
}

// PostalCode trims ZIP+4 down to the five digit ZIP.
func PostalCode(z string) string {
    z = strings.TrimSpace(z)
    if len(z) >= 5 { return z[:5] }
    return z
}

// CoordKey rounds to 5 decimals (about a metre) so repeated map clicks on the
// same spot share a key.
func CoordKey(lat, lng float64) string {
    return fmt.Sprintf("%.5f,%.5f", round5(lat), round5(lng))
}

func round5(v float64) float64 {
    r := math.Round(v*1e5) / 1e5
    if r == 0 { return 0 } // avoid "-0.00000"
    return r
}

func collapseSpaces(s string) string {
    return strings.Join(strings.Fields(s), " ")
}

func stripUnit(s string) string {
    // Remove trailing unit designators like APT, UNIT, STE, SUITE, #
    toks := []string{" APT ", " UNIT ", " STE ", " SUITE ", " #"}
    up := " " + s + " "
    for _, t := range toks {
        if i := strings.Index(up, t); i >= 0 {
            return strings.TrimSpace(up[:i])
        }
    }
    return strings.TrimSpace(s)
}

var suffixes = [][2]string{
    {" STREET ", " ST "},
    {" ROAD ", " RD "},
    {" AVENUE ", " AVE "},
    {" BOULEVARD ", " BLVD "},
    {" DRIVE ", " DR "},
    {" LANE ", " LN "},
    {" COURT ", " CT "},
    {" CIRCLE ", " CIR "},
    {" TERRACE ", " TER "},
    {" PLACE ", " PL "},
    {" PARKWAY ", " PKWY "},
    {" HIGHWAY ", " HWY "},
}

// abbreviateSuffix expects a space padded, space collapsed string.
func abbreviateSuffix(s string) string {
    // Basic USPS-style suffix normalization
    out := s
    for _, kv := range suffixes { out = strings.ReplaceAll(out, kv[0], kv[1]) }
    return out
}

var states = map[string]string{
    "ALABAMA":"AL","ALASKA":"AK","ARIZONA":"AZ","ARKANSAS":"AR","CALIFORNIA":"CA","COLORADO":"CO","CONNECTICUT":"CT","DELAWARE":"DE","FLORIDA":"FL","GEORGIA":"GA","HAWAII":"HI","IDAHO":"ID","ILLINOIS":"IL","INDIANA":"IN","IOWA":"IA","KANSAS":"KS","KENTUCKY":"KY","LOUISIANA":"LA","MAINE":"ME","MARYLAND":"MD","MASSACHUSETTS":"MA","MICHIGAN":"MI","MINNESOTA":"MN","MISSISSIPPI":"MS","MISSOURI":"MO","MONTANA":"MT","NEBRASKA":"NE","NEVADA":"NV","NEW HAMPSHIRE":"NH","NEW JERSEY":"NJ","NEW MEXICO":"NM","NEW YORK":"NY","NORTH CAROLINA":"NC","NORTH DAKOTA":"ND","OHIO":"OH","OKLAHOMA":"OK","OREGON":"OR","PENNSYLVANIA":"PA","RHODE ISLAND":"RI","SOUTH CAROLINA":"SC","SOUTH DAKOTA":"SD","TENNESSEE":"TN","TEXAS":"TX","UTAH":"UT","VERMONT":"VT","VIRGINIA":"VA","WASHINGTON":"WA","WEST VIRGINIA":"WV","WISCONSIN":"WI","WYOMING":"WY",
}

func stateAbbrev(s string) string {
    if v, ok := states[s]; ok { return v }
    return s
}
