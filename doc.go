/*
Package ddns keeps a DNS record pointed at the caller's current address
using the Mythic Beasts dynamic DNS API.

Usage will always start with [ddns.New],
which returns a [Client] for one domain name.
New requires a [Provider], normally registered with [UsingMythicBeasts].
The provider infers the address from the connection the request arrives on,
so each address family is updated by a request sent over that family.

[Client.Run] makes one attempt per enabled family and returns a [Result],
which [Report] turns into the "[ipv4] ..." lines printed by cmd/mbddns.
Config files are read with [LoadConfig].
*/
package ddns
