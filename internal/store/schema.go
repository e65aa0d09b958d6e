package store

const schema = `
CREATE TABLE IF NOT EXISTS tb_user (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    email         TEXT    NOT NULL UNIQUE,
    password      TEXT    NOT NULL,
    nickname      TEXT    NOT NULL,
    created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    updated_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    del_yn        TEXT    NOT NULL DEFAULT 'N' CHECK (del_yn IN ('N','Y'))
);

CREATE TABLE IF NOT EXISTS tb_post (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id       INTEGER NOT NULL REFERENCES tb_user(id),
    title         TEXT    NOT NULL,
    content       TEXT    NOT NULL,
    view_count    INTEGER NOT NULL DEFAULT 0,
    like_count    INTEGER NOT NULL DEFAULT 0,
    comment_count INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    updated_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    del_yn        TEXT    NOT NULL DEFAULT 'N' CHECK (del_yn IN ('N','Y'))
);
CREATE INDEX IF NOT EXISTS idx_post_user ON tb_post(user_id);

CREATE TABLE IF NOT EXISTS tb_comment (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id       INTEGER NOT NULL REFERENCES tb_post(id),
    user_id       INTEGER NOT NULL REFERENCES tb_user(id),
    content       TEXT    NOT NULL,
    created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    updated_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    del_yn        TEXT    NOT NULL DEFAULT 'N' CHECK (del_yn IN ('N','Y'))
);
CREATE INDEX IF NOT EXISTS idx_comment_post ON tb_comment(post_id);

CREATE TABLE IF NOT EXISTS tb_like (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id       INTEGER NOT NULL REFERENCES tb_post(id),
    user_id       INTEGER NOT NULL REFERENCES tb_user(id),
    created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    UNIQUE (post_id, user_id)
);

CREATE TABLE IF NOT EXISTS tb_view (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id       INTEGER NOT NULL REFERENCES tb_post(id),
    user_id       INTEGER NOT NULL REFERENCES tb_user(id),
    created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    UNIQUE (post_id, user_id)
);

CREATE TABLE IF NOT EXISTS tb_image (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id       INTEGER REFERENCES tb_post(id),
    user_id       INTEGER NOT NULL REFERENCES tb_user(id),
    file_name     TEXT    NOT NULL,
    file_path     TEXT    NOT NULL,
    content_type  TEXT    NOT NULL,
    size          INTEGER NOT NULL,
    ord           INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    del_yn        TEXT    NOT NULL DEFAULT 'N' CHECK (del_yn IN ('N','Y'))
);
CREATE INDEX IF NOT EXISTS idx_image_post ON tb_image(post_id);
`
