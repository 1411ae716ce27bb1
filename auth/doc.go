// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides bearer token signing and privacy helpers.

# User Tokens

Tokens are HMAC-SHA256 signed and carry the user id and role:

	token := auth.GenerateUserToken(42, false, salt)
	// "42.user.<signature>"

	ident, err := auth.ParseUserToken(token, salt)
	// ident.UserID == 42, ident.IsAdmin == false

Admin tokens use the "admin" role and unlock write operations on polls,
questions and answer choices. Tokens are minted out of band with the
"pollpass token" command; there is no login endpoint.

Clients send them as:

	Authorization: Bearer <token>

# IP Hashing

Client IPs are stored only as salted hashes on passed poll records:

	ipHash := auth.HashIP(clientIP, salt)

# Security Notes

  - Signatures are compared with hmac.Equal (constant time)
  - Tampering with the user id or role invalidates the signature
  - The salt must be kept secret; rotating it invalidates every token
*/
package auth
