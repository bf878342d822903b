/*
Package postgres manages our database connection. As part of the connection process, we also ensure that all migrations
have been run on the proper database. The situation where the database is simply a target for some testing has been
considered as well. In this scenario, we are dropping the public schema.

The *DB wrapper exposes the handful of query shapes the application needs and translates
driver errors into the root package's sentinel errors. The UserStore implements
whisperwall.UserStorer such that handlers can be tested without an actual database
running in the environment.
*/
package postgres
