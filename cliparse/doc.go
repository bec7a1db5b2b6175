// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Precedence

CLI flags win over environment variables; environment variables win over
defaults. Secrets should come from the environment in production.

# Settings

Required:

  - SESSION_SALT (--session-salt): Secret for password digest and session HMAC

Optional:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): Connection string; defaults to file:jingledraw.db
    for sqlite, required for postgres
  - IDEAS_API_URL (--ideas-url): Gift idea API base URL
  - IDEAS_API_KEY (--ideas-key): Gift idea API key

Without IDEAS_API_URL/IDEAS_API_KEY the server still works; gift
suggestions fall back to a static list.
*/
package cliparse
